package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeronotes/secure-notes/internal/api/metrics"
	"github.com/zeronotes/secure-notes/internal/core/domain"
	"github.com/zeronotes/secure-notes/internal/core/ports"
)

// LoginLimiter caps login attempts per username and source address.
type LoginLimiter interface {
	Allow(ctx context.Context, username, ip string) (bool, error)
}

type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
}

// NewAuthHandler creates an AuthHandler. limiter may be nil, in which case
// login attempts are not throttled.
func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type whoamiResponse struct {
	Username string `json:"username"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == domain.ErrUserExists {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if h.limiter != nil {
		// Fail open on limiter errors: a degraded Redis must not lock
		// everyone out.
		if allowed, err := h.limiter.Allow(c.Request().Context(), req.Username, c.RealIP()); err == nil && !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		}
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// WhoAmI returns the identity bound to the presented bearer token.
//
// @Summary      Resolve the authenticated identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  whoamiResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/whoami [get]
func (h *AuthHandler) WhoAmI(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, whoamiResponse{Username: username})
}
