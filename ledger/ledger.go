// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/db"
	"github.com/danielhkuo/eballot/metrics"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/registry"
)

var (
	ErrElectionNotFound  = registry.ErrElectionNotFound
	ErrElectionNotActive = apperr.New(apperr.KindState, "This election is not currently active")
	ErrInvalidCandidate  = apperr.New(apperr.KindNotFound, "Candidate does not belong to this election")
	ErrAlreadyVoted      = apperr.New(apperr.KindConflict, "You have already voted in this election")
)

// Rejection reasons, used as metric labels.
const (
	ReasonElectionNotFound  = "election_not_found"
	ReasonElectionNotActive = "election_not_active"
	ReasonInvalidCandidate  = "invalid_candidate"
	ReasonAlreadyVoted      = "already_voted"
	ReasonStorageFailure    = "storage_failure"
)

// Elections is the part of the election registry the ledger consults.
type Elections interface {
	GetStatus(ctx context.Context, electionID int64) (models.ElectionStatus, error)
	HasCandidate(ctx context.Context, electionID, candidateID int64) (bool, error)
}

// Auditor records security events.
type Auditor interface {
	Record(ctx context.Context, entry models.AuditLogEntry) error
}

// Ledger records votes and is the only writer of the votes table. The
// one-vote-per-voter-per-election rule is enforced by the store's unique
// constraint; the insert itself is the test-and-set.
type Ledger struct {
	db        *sql.DB
	elections Elections
	audit     Auditor
	metrics   *metrics.Metrics
	now       func() time.Time
	newID     func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source for vote timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithMetrics records cast outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

func New(db *sql.DB, elections Elections, audit Auditor, opts ...Option) *Ledger {
	l := &Ledger{
		db:        db,
		elections: elections,
		audit:     audit,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// CastVote records voterID's vote for candidateID in electionID and returns
// the new vote ID. Every call ends in exactly one of: success,
// ErrElectionNotFound, ErrElectionNotActive, ErrInvalidCandidate,
// ErrAlreadyVoted, or a KindStorage error. It is never retried internally.
func (l *Ledger) CastVote(ctx context.Context, voterID string, electionID, candidateID int64, origin string) (string, error) {
	status, err := l.elections.GetStatus(ctx, electionID)
	if err != nil {
		if errors.Is(err, registry.ErrElectionNotFound) {
			return "", l.reject(ReasonElectionNotFound, ErrElectionNotFound)
		}
		return "", l.reject(ReasonStorageFailure, storageFailure("failed to read election", err))
	}
	if status != models.StatusActive {
		return "", l.reject(ReasonElectionNotActive, ErrElectionNotActive)
	}

	ok, err := l.elections.HasCandidate(ctx, electionID, candidateID)
	if err != nil {
		return "", l.reject(ReasonStorageFailure, storageFailure("failed to verify candidate", err))
	}
	if !ok {
		return "", l.reject(ReasonInvalidCandidate, ErrInvalidCandidate)
	}

	vote := models.Vote{
		ID:          l.newID(),
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		Origin:      origin,
		CreatedAt:   l.now().UTC(),
	}

	// No existence check first: a concurrent cast for the same pair would
	// race it. The unique constraint decides.
	_, err = db.Session(ctx, l.db).ExecContext(ctx, `
		INSERT INTO votes (vote_id, voter_id, election_id, candidate_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.VoterID, vote.ElectionID, vote.CandidateID, vote.Origin, vote.CreatedAt)
	if err != nil {
		if db.IsVoteConflict(err) {
			return "", l.reject(ReasonAlreadyVoted, ErrAlreadyVoted)
		}
		return "", l.reject(ReasonStorageFailure, storageFailure("failed to record vote", err))
	}

	l.metrics.IncVotesCast()
	slog.Info("vote cast", "vote_id", vote.ID, "election_id", electionID, "voter_id", voterID)

	l.recordAudit(ctx, vote)

	return vote.ID, nil
}

// recordAudit is best-effort: the vote is already committed.
func (l *Ledger) recordAudit(ctx context.Context, vote models.Vote) {
	if l.audit == nil {
		return
	}
	err := l.audit.Record(ctx, models.AuditLogEntry{
		VoterID: &vote.VoterID,
		Action:  models.ActionVoteCast,
		Details: fmt.Sprintf("Vote cast for election: %d", vote.ElectionID),
		Origin:  vote.Origin,
	})
	if err != nil {
		l.metrics.IncAuditFailures()
		slog.Error("failed to write vote audit event",
			"error", err,
			"vote_id", vote.ID,
			"election_id", vote.ElectionID,
			"voter_id", vote.VoterID,
		)
	}
}

// CountByVoter returns how many votes voterID has cast across all elections.
func (l *Ledger) CountByVoter(ctx context.Context, voterID string) (int, error) {
	var n int
	err := db.Session(ctx, l.db).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM votes WHERE voter_id = $1
	`, voterID).Scan(&n)
	if err != nil {
		return 0, apperr.Storage("failed to count votes", err)
	}
	return n, nil
}

// HasVoted reports whether voterID has a vote recorded in electionID.
// Informational only; CastVote never relies on it.
func (l *Ledger) HasVoted(ctx context.Context, voterID string, electionID int64) (bool, error) {
	var exists bool
	err := db.Session(ctx, l.db).QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM votes WHERE voter_id = $1 AND election_id = $2
		)
	`, voterID, electionID).Scan(&exists)
	if err != nil {
		return false, apperr.Storage("failed to check vote", err)
	}
	return exists, nil
}

func (l *Ledger) reject(reason string, err error) error {
	l.metrics.IncVoteRejection(reason)
	return err
}

// storageFailure keeps a classified storage error as is and wraps anything else.
func storageFailure(message string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind == apperr.KindStorage {
		return appErr
	}
	return apperr.Storage(message, err)
}
