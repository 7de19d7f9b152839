// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/eballot/audit"
	"github.com/danielhkuo/eballot/ledger"
	"github.com/danielhkuo/eballot/metrics"
	"github.com/danielhkuo/eballot/middleware"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/registry"
)

type VotingHandler struct {
	ledger *ledger.Ledger
}

func NewVotingHandler(db *sql.DB, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{
		ledger: ledger.New(db, registry.New(db), audit.New(db), ledger.WithMetrics(m)),
	}
}

// CastVote handles POST /api/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voterID, ok := middleware.VoterID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID <= 0 || req.CandidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Election ID and Candidate ID are required")
		return
	}

	voteID, err := h.ledger.CastVote(r.Context(), voterID, int64(req.ElectionID), int64(req.CandidateID), middleware.GetClientIP(r))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message: "Vote cast successfully",
		VoteID:  voteID,
	})
}
