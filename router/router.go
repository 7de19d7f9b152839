// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/eballot/auth"
	"github.com/danielhkuo/eballot/cliparse"
	"github.com/danielhkuo/eballot/handlers"
	"github.com/danielhkuo/eballot/metrics"
	"github.com/danielhkuo/eballot/middleware"
	"github.com/danielhkuo/eballot/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	m := metrics.New()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, m)
	electionHandler := handlers.NewElectionHandler(db)
	votingHandler := handlers.NewVotingHandler(db, m)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes hold one store session for the whole request
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithSession(db, h))
	}
	// Protected routes verify the token before acquiring anything
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireVoter(tokens, middleware.WithSession(db, h)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:  "ok",
			Message: "EBallot API is running",
		})
	})
	mux.Handle("GET /metrics", m.Handler())

	// Voter identity
	mux.HandleFunc("POST /api/register", public(authHandler.Register))
	mux.HandleFunc("POST /api/login", public(authHandler.Login))

	// Elections and results
	mux.HandleFunc("GET /api/elections", protected(electionHandler.ListElections))
	mux.HandleFunc("GET /api/elections/{electionId}/candidates", protected(electionHandler.GetCandidates))
	mux.HandleFunc("GET /api/elections/{electionId}/results", protected(electionHandler.GetResults))

	// Voting
	mux.HandleFunc("POST /api/vote", protected(votingHandler.CastVote))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/stats", protected(dashboardHandler.Stats))

	return mux
}
