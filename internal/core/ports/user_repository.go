package ports

import (
	"context"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	// FindByUsername looks up an identity by exact, case-sensitive username.
	// An absent username is reported as domain.ErrInvalidCredentials so the
	// lookup result is indistinguishable from a failed password check.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts a new identity. A username collision yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
