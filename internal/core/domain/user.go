package domain

import (
	"errors"
	"time"
)

// User models a registered identity. The password hash never leaves the
// credential layer: it is excluded from JSON and only the auth service
// reads it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var ErrUserExists = errors.New("username already taken")

// ErrInvalidCredentials covers both an unknown username and a failed
// password check. The two cases are never distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken covers every token validation failure: bad signature,
// malformed structure, and expiry. Callers see a single error surface.
var ErrInvalidToken = errors.New("invalid token")
