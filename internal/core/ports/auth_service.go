package ports

import (
	"context"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies the credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer mints a signed, time-bounded bearer token for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// TokenValidator checks a bearer token and returns the subject username.
// Every failure mode surfaces as domain.ErrInvalidToken.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}
