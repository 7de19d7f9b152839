// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/audit"
	"github.com/danielhkuo/eballot/auth"
	"github.com/danielhkuo/eballot/cliparse"
	"github.com/danielhkuo/eballot/metrics"
	"github.com/danielhkuo/eballot/middleware"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/voters"
)

// Login outcomes, used as metric labels.
const (
	LoginSuccess     = "success"
	LoginFailed      = "failed"
	LoginDeactivated = "deactivated"
)

type AuthHandler struct {
	voters  *voters.Store
	tokens  *auth.TokenService
	audit   Auditor
	metrics *metrics.Metrics
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		voters:  voters.New(db),
		tokens:  auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		audit:   audit.New(db),
		metrics: m,
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := h.voters.Register(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.metrics.IncRegistrations()
	recordEvent(r.Context(), h.audit, h.metrics, models.AuditLogEntry{
		VoterID: &voter.VoterID,
		Action:  models.ActionRegistration,
		Details: "New voter registered",
		Origin:  middleware.GetClientIP(r),
	})

	slog.Info("voter registered", "voter_id", voter.VoterID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Message: "Registration successful",
		VoterID: voter.VoterID,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	origin := middleware.GetClientIP(r)

	voter, err := h.voters.Authenticate(r.Context(), req.VoterID, req.Password)
	if err != nil {
		h.recordFailedLogin(r, req.VoterID, voter, origin, err)
		middleware.WriteError(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(voter.VoterID)
	if err != nil {
		middleware.WriteError(w, r, apperr.Wrap(apperr.KindStorage, "failed to issue token", err))
		return
	}

	h.metrics.IncLogin(LoginSuccess)
	recordEvent(r.Context(), h.audit, h.metrics, models.AuditLogEntry{
		VoterID: &voter.VoterID,
		Action:  models.ActionLoginSuccess,
		Details: "User logged in",
		Origin:  origin,
	})

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		Voter: models.VoterSummary{
			VoterID: voter.VoterID,
			Name:    voter.FullName(),
			Email:   voter.Email,
		},
	})
}

// recordFailedLogin attributes the attempt to the voter when one exists.
// Unknown IDs are kept in the details only, since audit_logs references voters.
func (h *AuthHandler) recordFailedLogin(r *http.Request, attemptedID string, voter models.Voter, origin string, err error) {
	var entry models.AuditLogEntry
	switch {
	case errors.Is(err, voters.ErrAccountDeactivated):
		h.metrics.IncLogin(LoginDeactivated)
		entry = models.AuditLogEntry{VoterID: &voter.VoterID, Details: "Login attempt on deactivated account"}
	case errors.Is(err, voters.ErrInvalidCredentials) && voter.VoterID != "":
		h.metrics.IncLogin(LoginFailed)
		entry = models.AuditLogEntry{VoterID: &voter.VoterID, Details: "Invalid password"}
	case errors.Is(err, voters.ErrInvalidCredentials):
		h.metrics.IncLogin(LoginFailed)
		entry = models.AuditLogEntry{Details: "Unknown voter ID: " + attemptedID}
	default:
		return
	}

	entry.Action = models.ActionLoginFailed
	entry.Origin = origin
	recordEvent(r.Context(), h.audit, h.metrics, entry)
}
