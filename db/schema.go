// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is portable between PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// VoteUniqueConstraint is the constraint that makes a second ballot from the
// same voter in the same election fail at insert time.
const VoteUniqueConstraint = "uq_votes_voter_election"

const schema = `
-- Voters
CREATE TABLE IF NOT EXISTS voters (
    voter_id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    middle_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL,
    mobile TEXT NOT NULL UNIQUE,
    aadhar TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    date_of_birth TEXT NOT NULL,
    residential_address TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Elections
CREATE TABLE IF NOT EXISTS elections (
    election_id INTEGER PRIMARY KEY,
    election_name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'active', 'completed'))
);

CREATE INDEX IF NOT EXISTS idx_elections_status ON elections(status);

-- Candidates
CREATE TABLE IF NOT EXISTS candidates (
    candidate_id INTEGER PRIMARY KEY,
    election_id INTEGER NOT NULL REFERENCES elections(election_id),
    candidate_name TEXT NOT NULL,
    party_name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    photo_url TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_candidates_election_id ON candidates(election_id);

-- Votes (append-only)
CREATE TABLE IF NOT EXISTS votes (
    vote_id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voters(voter_id),
    election_id INTEGER NOT NULL REFERENCES elections(election_id),
    candidate_id INTEGER NOT NULL REFERENCES candidates(candidate_id),
    ip_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    CONSTRAINT uq_votes_voter_election UNIQUE (voter_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_election_candidate ON votes(election_id, candidate_id);

-- Audit log (append-only)
CREATE TABLE IF NOT EXISTS audit_logs (
    log_id TEXT PRIMARY KEY,
    voter_id TEXT REFERENCES voters(voter_id),
    action TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    ip_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_voter_id ON audit_logs(voter_id);
`
