// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
)

// Executor is the query surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sessionKey struct{}

// WithSession stores a request-scoped connection in ctx for downstream stores.
func WithSession(ctx context.Context, conn *sql.Conn) context.Context {
	if conn == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, conn)
}

// Session returns the request-scoped connection from ctx, or fallback when
// the caller did not open one.
func Session(ctx context.Context, fallback *sql.DB) Executor {
	if conn, ok := ctx.Value(sessionKey{}).(*sql.Conn); ok {
		return conn
	}
	return fallback
}
