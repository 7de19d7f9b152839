// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/db"
	"github.com/danielhkuo/eballot/models"
)

var (
	ErrElectionNotFound = apperr.New(apperr.KindNotFound, "Election not found")
	ErrInvalidStatus    = apperr.New(apperr.KindValidation, "status must be one of upcoming, active, completed")
)

// Registry answers read-only questions about elections and their candidates.
type Registry struct {
	db *sql.DB
}

func New(db *sql.DB) *Registry {
	return &Registry{db: db}
}

// GetStatus returns the status of an election, or ErrElectionNotFound.
func (r *Registry) GetStatus(ctx context.Context, electionID int64) (models.ElectionStatus, error) {
	var status models.ElectionStatus
	err := db.Session(ctx, r.db).QueryRowContext(ctx, `
		SELECT status FROM elections WHERE election_id = $1
	`, electionID).Scan(&status)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrElectionNotFound
	}
	if err != nil {
		return "", apperr.Storage("failed to query election", err)
	}
	return status, nil
}

// ListElections returns elections with the given status, newest start first.
func (r *Registry) ListElections(ctx context.Context, status models.ElectionStatus) ([]models.Election, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	rows, err := db.Session(ctx, r.db).QueryContext(ctx, `
		SELECT election_id, election_name, description, start_date, end_date, status
		FROM elections
		WHERE status = $1
		ORDER BY start_date DESC, election_id ASC
	`, string(status))
	if err != nil {
		return nil, apperr.Storage("failed to query elections", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &e.Status); err != nil {
			return nil, apperr.Storage("failed to scan election", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("failed to read elections", err)
	}
	return elections, nil
}

// ListCandidates returns the candidates of an election ordered by candidate ID.
// An unknown election has no candidates.
func (r *Registry) ListCandidates(ctx context.Context, electionID int64) ([]models.Candidate, error) {
	rows, err := db.Session(ctx, r.db).QueryContext(ctx, `
		SELECT candidate_id, election_id, candidate_name, party_name, description, photo_url
		FROM candidates
		WHERE election_id = $1
		ORDER BY candidate_id ASC
	`, electionID)
	if err != nil {
		return nil, apperr.Storage("failed to query candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Description, &c.PhotoURL); err != nil {
			return nil, apperr.Storage("failed to scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("failed to read candidates", err)
	}
	return candidates, nil
}

// HasCandidate reports whether candidateID stands in electionID.
func (r *Registry) HasCandidate(ctx context.Context, electionID, candidateID int64) (bool, error) {
	var exists bool
	err := db.Session(ctx, r.db).QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM candidates
			WHERE candidate_id = $1 AND election_id = $2
		)
	`, candidateID, electionID).Scan(&exists)
	if err != nil {
		return false, apperr.Storage("failed to verify candidate", err)
	}
	return exists, nil
}

// CountByStatus returns the number of elections in each status. Every known
// status is present in the result, zero when there are none.
func (r *Registry) CountByStatus(ctx context.Context) (map[models.ElectionStatus]int, error) {
	counts := map[models.ElectionStatus]int{
		models.StatusUpcoming:  0,
		models.StatusActive:    0,
		models.StatusCompleted: 0,
	}

	rows, err := db.Session(ctx, r.db).QueryContext(ctx, `
		SELECT status, COUNT(*) FROM elections GROUP BY status
	`)
	if err != nil {
		return nil, apperr.Storage("failed to count elections", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.ElectionStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperr.Storage("failed to scan election count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("failed to read election counts", err)
	}
	return counts, nil
}
