package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeronotes/secure-notes/internal/core/domain"
	"github.com/zeronotes/secure-notes/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, audit: audit, logger: logger}
}

// Register hashes the password and persists a new identity. A username
// collision yields domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.record(username, "register", "duplicate")
		}
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	s.record(username, "register", "ok")
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token. An
// unknown username and a wrong password both yield the same
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.record(username, "login", "invalid")
		}
		return "", err
	}

	// Constant-time comparison internal to bcrypt; a corrupted stored hash
	// fails verification instead of panicking.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(username, "login", "invalid")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	s.record(username, "login", "ok")
	return token, nil
}

func (s *AuthService) record(username, action, result string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEvent{
		Username: username,
		Action:   action,
		Result:   result,
		At:       time.Now().UTC(),
	})
}
