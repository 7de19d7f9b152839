// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the backing store, creates the schema, and classifies
driver errors.

# Drivers

Open selects the driver from cliparse.Config.DatabaseType:

  - "postgres": github.com/lib/pq
  - "sqlite":   modernc.org/sqlite (foreign keys on, WAL, busy timeout)

# Schema

	voters      - registered voters (voter_id, mobile, aadhar, email unique)
	elections   - contests with status upcoming | active | completed
	candidates  - options within one election
	votes       - ballots, UNIQUE (voter_id, election_id)
	audit_logs  - append-only security events

CreateSchema is idempotent and the DDL runs unchanged on both drivers.

# Unique Violations

IsUniqueViolation inspects the driver's own error type (SQLSTATE 23505 for
PostgreSQL, SQLITE_CONSTRAINT_UNIQUE for SQLite). Callers use it to turn an
insert's constraint failure into a conflict without a prior existence check.

IsVoteConflict narrows that to VoteUniqueConstraint, so a vote_id collision
is a storage failure and never reads as a repeat vote.

# Sessions

A request acquires one connection at entry and releases it on every exit path:

	conn, err := pool.Conn(ctx)
	defer conn.Close()
	ctx = db.WithSession(ctx, conn)

Stores call db.Session(ctx, pool) so they run on the request's connection when
there is one and on the pool otherwise.
*/
package db
