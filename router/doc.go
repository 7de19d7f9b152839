// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the EBallot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Public:

	GET  /api/health   - Liveness
	GET  /metrics      - Prometheus metrics
	POST /api/register - Register a voter
	POST /api/login    - Exchange credentials for a bearer token

Protected (Authorization: Bearer <token>):

	GET  /api/elections?status=active           - List elections by status
	GET  /api/elections/{electionId}/candidates - Candidates and has_voted
	POST /api/vote                              - Cast a vote
	GET  /api/elections/{electionId}/results    - Tally
	GET  /api/dashboard/stats                   - Election counts and own votes

# Middleware Chain

Protected routes run logging, then token verification, then session
acquisition, then the handler. A rejected token never touches the store.
*/
package router
