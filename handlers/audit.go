// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/eballot/metrics"
	"github.com/danielhkuo/eballot/models"
)

// Auditor records security events.
type Auditor interface {
	Record(ctx context.Context, entry models.AuditLogEntry) error
}

// recordEvent writes entry and logs a failure. The request outcome never
// depends on it.
func recordEvent(ctx context.Context, audit Auditor, m *metrics.Metrics, entry models.AuditLogEntry) {
	if err := audit.Record(ctx, entry); err != nil {
		m.IncAuditFailures()
		slog.Error("failed to write audit event",
			"error", err,
			"action", entry.Action,
		)
	}
}
