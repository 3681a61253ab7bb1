package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	created := cloneUser(user)
	created.ID = user.Username
	r.users[created.Username] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return cloneUser(u), nil
}

func newAuthService(repo *stubUserRepo) *AuthService {
	tokens := NewTokenService("secret", time.Hour, zerolog.Nop())
	return NewAuthService(repo, tokens, nil, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	user, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "bob", "pw"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pw2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// A different username registers independently.
	if _, err := svc.Register(context.Background(), "carol", "pw"); err != nil {
		t.Fatalf("independent register failed: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService("secret", time.Hour, zerolog.Nop())
	svc := NewAuthService(repo, tokens, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	username, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if username != "carol" {
		t.Fatalf("expected subject carol, got %q", username)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "dave", "goodpass")
	if _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "erin", "goodpass")

	_, unknownErr := svc.Login(context.Background(), "ghost", "pw")
	_, wrongPwErr := svc.Login(context.Background(), "erin", "badpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwErr)
	}
}

func TestAuthService_Login_CorruptedHash(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["mallory"] = &domain.User{
		Username:     "mallory",
		PasswordHash: "not-a-bcrypt-hash",
		CreatedAt:    time.Now(),
	}
	svc := newAuthService(repo)

	// A corrupted stored hash fails verification instead of panicking.
	if _, err := svc.Login(context.Background(), "mallory", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
