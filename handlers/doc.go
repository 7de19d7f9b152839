// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the EBallot API.

# Handler Types

  - AuthHandler: registration and login
  - ElectionHandler: election listing, candidates and results
  - VotingHandler: vote casting
  - DashboardHandler: per-voter summary

Handlers are created from the shared pool and wire their own components:

	votingHandler := handlers.NewVotingHandler(db, metrics)

# Errors

Components return apperr errors; handlers pass them to
middleware.WriteError, which picks the status from the error kind. A vote
for an unknown election is 404, for an election that is not active 400, and
a repeat vote 409.

# Auditing

Registration, login outcomes and cast votes are written to the audit trail
after the fact. A failed audit write is logged and counted but never
changes the response.
*/
package handlers
