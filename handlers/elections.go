// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/danielhkuo/eballot/ledger"
	"github.com/danielhkuo/eballot/middleware"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/registry"
	"github.com/danielhkuo/eballot/tally"
)

type ElectionHandler struct {
	registry *registry.Registry
	tally    *tally.Engine
	ledger   *ledger.Ledger
}

func NewElectionHandler(db *sql.DB) *ElectionHandler {
	reg := registry.New(db)
	return &ElectionHandler{
		registry: reg,
		tally:    tally.New(db, reg),
		ledger:   ledger.New(db, reg, nil),
	}
}

// ListElections handles GET /api/elections?status=
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	status := models.ElectionStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.StatusActive
	}

	elections, err := h.registry.ListElections(r.Context(), status)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionsResponse{Elections: elections})
}

// GetCandidates handles GET /api/elections/{electionId}/candidates
func (h *ElectionHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := middleware.VoterID(r.Context())

	candidates, err := h.registry.ListCandidates(r.Context(), electionID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	voted, err := h.ledger.HasVoted(r.Context(), voterID, electionID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		Candidates: candidates,
		HasVoted:   voted,
	})
}

// GetResults handles GET /api/elections/{electionId}/results
func (h *ElectionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID, ok := electionIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.tally.Tally(r.Context(), electionID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

func electionIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("electionId"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid election ID")
		return 0, false
	}
	return id, true
}
