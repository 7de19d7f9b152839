// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/eballot/ledger"
	"github.com/danielhkuo/eballot/middleware"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/registry"
)

type DashboardHandler struct {
	registry *registry.Registry
	ledger   *ledger.Ledger
}

func NewDashboardHandler(db *sql.DB) *DashboardHandler {
	reg := registry.New(db)
	return &DashboardHandler{registry: reg, ledger: ledger.New(db, reg, nil)}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	voterID, _ := middleware.VoterID(r.Context())

	counts, err := h.registry.CountByStatus(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	votesCast, err := h.ledger.CountByVoter(r.Context(), voterID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardStats{
		ActiveElections:    counts[models.StatusActive],
		UpcomingElections:  counts[models.StatusUpcoming],
		CompletedElections: counts[models.StatusCompleted],
		VotesCast:          votesCast,
	})
}
