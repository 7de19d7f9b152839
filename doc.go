// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the EBallot API server.

EBallot registers voters, authenticates them with signed bearer tokens,
lists elections and candidates, accepts at most one vote per voter per
election and tallies results on demand.

# Starting the Server

	JWT_SECRET=... DATABASE_URL=eballot.db go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -jwt-secret ...

A .env file in the working directory is loaded first when present; real
environment variables take precedence.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Token signing secret

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): Server port (default: 5000)
  - TOKEN_TTL (-token-ttl): Token lifetime (default: 24h)

# Architecture

  - ledger: vote casting, one vote per voter per election
  - tally: results computed from the ledger
  - registry: elections and candidates
  - voters: registration and credential checks
  - audit: append-only security event log
  - auth: bearer tokens and password hashing
  - handlers, router, middleware: HTTP surface
  - db: drivers, schema and per-request sessions
  - apperr: error kinds shared by every component
  - metrics: Prometheus counters
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
