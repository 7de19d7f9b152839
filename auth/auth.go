// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/danielhkuo/eballot/apperr"
)

var (
	ErrMissingCredential   = apperr.New(apperr.KindAuth, "Token is missing")
	ErrExpiredCredential   = apperr.New(apperr.KindAuth, "Token has expired")
	ErrMalformedCredential = apperr.New(apperr.KindAuth, "Invalid token")
)

const bearerPrefix = "Bearer "

// Claims binds a voter to an expiry instant.
type Claims struct {
	VoterID string `json:"voter_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies voter tokens. It holds no mutable state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock sets the time source used for issuing and checking expiry.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenService(secret string, ttl time.Duration, opts ...Option) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for voterID valid for the configured TTL.
func (s *TokenService) Issue(voterID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		VoterID: voterID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify resolves a presented credential to a voter ID. The credential may
// carry a "Bearer " scheme prefix. It has no side effects.
func (s *TokenService) Verify(credential string) (string, error) {
	raw := strings.TrimSpace(credential)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	if raw == "" {
		return "", ErrMissingCredential
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredCredential.WithCause(err)
		}
		return "", ErrMalformedCredential.WithCause(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.VoterID == "" {
		return "", ErrMalformedCredential
	}

	return claims.VoterID, nil
}
