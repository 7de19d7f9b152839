// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/eballot/cliparse"
)

// sqlitePragmas are applied to every SQLite connection.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
}

// Open connects to the database named by cfg and verifies the connection.
func Open(ctx context.Context, cfg cliparse.Config) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		conn, err = sql.Open("postgres", cfg.DatabaseURL)
	case cliparse.DatabaseSQLite, "":
		conn, err = sql.Open("sqlite", sqliteDSN(cfg.DatabaseURL))
		if err == nil {
			// SQLite allows a single writer; one pooled connection keeps
			// writers queued in the pool instead of failing with SQLITE_BUSY.
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(sqlitePragmas, "&")
}
