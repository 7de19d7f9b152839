// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/eballot/db"
	"github.com/danielhkuo/eballot/models"
)

// Trail appends security events to audit_logs. It is write-only; nothing in
// the request path reads it back.
type Trail struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Trail {
	return &Trail{db: db, now: time.Now}
}

// Record appends entry. ID and CreatedAt are filled in when empty.
func (t *Trail) Record(ctx context.Context, entry models.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = t.now().UTC()
	}

	_, err := db.Session(ctx, t.db).ExecContext(ctx, `
		INSERT INTO audit_logs (log_id, voter_id, action, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.VoterID, entry.Action, entry.Details, entry.Origin, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log %s: %w", entry.Action, err)
	}
	return nil
}

// Entries returns every entry for voterID in insertion order. Used by
// tests; request handlers never call it.
func (t *Trail) Entries(ctx context.Context, voterID string) ([]models.AuditLogEntry, error) {
	rows, err := db.Session(ctx, t.db).QueryContext(ctx, `
		SELECT log_id, voter_id, action, details, ip_address, created_at
		FROM audit_logs
		WHERE voter_id = $1
		ORDER BY created_at ASC, log_id ASC
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		var voter sql.NullString
		if err := rows.Scan(&e.ID, &voter, &e.Action, &e.Details, &e.Origin, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if voter.Valid {
			e.VoterID = &voter.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
