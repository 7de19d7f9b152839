// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/db"
)

// TokenVerifier resolves a bearer credential to a voter ID.
type TokenVerifier interface {
	Verify(credential string) (string, error)
}

type voterKey struct{}

// RequireVoter rejects the request with 401 unless the Authorization header
// carries a valid token. next runs only after verification succeeds.
func RequireVoter(tokens TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		voterID, err := tokens.Verify(r.Header.Get("Authorization"))
		if err != nil {
			slog.Warn("rejected credential", "path", r.URL.Path, "error", err)
			WriteError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), voterKey{}, voterID)))
	}
}

// VoterID returns the authenticated voter set by RequireVoter.
func VoterID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(voterKey{}).(string)
	return id, ok && id != ""
}

// WithSession acquires one store connection for the request and releases it
// when the handler returns, whatever the outcome.
func WithSession(pool *sql.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := pool.Conn(r.Context())
		if err != nil {
			WriteError(w, r, apperr.Storage("failed to acquire database session", err))
			return
		}
		defer conn.Close()

		next(w, r.WithContext(db.WithSession(r.Context(), conn)))
	}
}
