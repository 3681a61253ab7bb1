package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/zeronotes/secure-notes/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService mints and validates HS256-signed bearer tokens. The signing
// key is fixed at construction; tokens have no revocation path, expiry is
// the only termination mechanism.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService builds a TokenService with the given signing key. When
// secret is empty a random key is generated for the process lifetime,
// which means tokens do not survive a restart.
func NewTokenService(secret string, ttl time.Duration, logger zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("token service: generate signing key: %v", err))
		}
		logger.Warn().Msg("JWT_SECRET not set, using an ephemeral signing key; tokens will not survive a restart")
	}

	return &TokenService{key: key, ttl: ttl}
}

// Issue returns a signed token with subject=username, valid for the
// configured lifetime.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate verifies the signature and expiry of tokenString and returns
// the subject username. Signature mismatch, malformed structure, and
// expiry all collapse to domain.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
