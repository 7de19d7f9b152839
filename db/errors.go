// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// voteUniqueColumns is how SQLite reports VoteUniqueConstraint; it names
// columns rather than the constraint.
const voteUniqueColumns = "votes.voter_id, votes.election_id"

// IsVoteConflict reports whether err is VoteUniqueConstraint rejecting a
// second vote for the same voter and election. Other unique violations on
// votes, such as a vote_id collision, return false.
func IsVoteConflict(err error) bool {
	if !IsUniqueViolation(err) {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint == VoteUniqueConstraint
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), voteUniqueColumns)
	}
	return false
}

// IsUniqueViolation reports whether err is the store rejecting a write
// because it would duplicate a UNIQUE or PRIMARY KEY value. Any other
// failure (connectivity, foreign keys, timeouts) returns false.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended result codes disabled on this connection
			msg := liteErr.Error()
			return strings.Contains(msg, "UNIQUE constraint failed") ||
				strings.Contains(msg, "PRIMARY KEY constraint failed")
		}
	}

	return false
}
