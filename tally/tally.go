// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"database/sql"
	"math"
	"sort"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/db"
	"github.com/danielhkuo/eballot/models"
)

// Elections confirms an election exists before it is tallied.
type Elections interface {
	GetStatus(ctx context.Context, electionID int64) (models.ElectionStatus, error)
}

// Engine computes results on demand from the votes table. It keeps no state
// of its own.
type Engine struct {
	db        *sql.DB
	elections Elections
}

func New(db *sql.DB, elections Elections) *Engine {
	return &Engine{db: db, elections: elections}
}

// Tally returns per-candidate counts and percentages for electionID.
// Every candidate appears, including those with no votes. TotalVotes is the
// sum of the per-candidate counts from the same read.
func (e *Engine) Tally(ctx context.Context, electionID int64) (models.TallyResult, error) {
	if _, err := e.elections.GetStatus(ctx, electionID); err != nil {
		return models.TallyResult{}, err
	}

	exec := db.Session(ctx, e.db)

	rows, err := exec.QueryContext(ctx, `
		SELECT c.candidate_id, c.candidate_name, c.party_name, COUNT(v.vote_id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.candidate_id AND v.election_id = c.election_id
		WHERE c.election_id = $1
		GROUP BY c.candidate_id, c.candidate_name, c.party_name
		ORDER BY COUNT(v.vote_id) DESC, c.candidate_id ASC
	`, electionID)
	if err != nil {
		return models.TallyResult{}, apperr.Storage("failed to tally votes", err)
	}
	defer rows.Close()

	results := []models.CandidateResult{}
	total := 0
	for rows.Next() {
		var r models.CandidateResult
		if err := rows.Scan(&r.CandidateID, &r.Name, &r.Party, &r.Count); err != nil {
			return models.TallyResult{}, apperr.Storage("failed to scan tally row", err)
		}
		total += r.Count
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return models.TallyResult{}, apperr.Storage("failed to read tally", err)
	}

	return models.TallyResult{
		ElectionID: electionID,
		TotalVotes: total,
		Results:    Rank(results, total),
	}, nil
}

// Rank fills in percentages and orders results by count descending, then
// candidate ID ascending. It sorts results in place and returns it.
func Rank(results []models.CandidateResult, total int) []models.CandidateResult {
	for i := range results {
		results[i].Percentage = Percentage(results[i].Count, total)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	return results
}

// Percentage returns count as a share of total, rounded half away from zero
// to two decimals. A zero total counts as one so every share is 0.00.
func Percentage(count, total int) float64 {
	denominator := max(total, 1)
	return math.Round(float64(count)*100*100/float64(denominator)) / 100
}
