// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voters

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/auth"
	"github.com/danielhkuo/eballot/db"
	"github.com/danielhkuo/eballot/models"
)

var (
	ErrVoterNotFound      = apperr.New(apperr.KindNotFound, "Voter not found")
	ErrDuplicateVoter     = apperr.New(apperr.KindConflict, "A voter with this email, mobile, Aadhar, or ID already exists")
	ErrInvalidCredentials = apperr.New(apperr.KindAuth, "Invalid Voter ID or password")
	ErrAccountDeactivated = apperr.New(apperr.KindForbidden, "Your account has been deactivated")
)

// Store persists voter records. Voters are never deleted.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Register validates req, hashes the password and inserts an active voter.
// Duplicates are detected from the insert's constraint violation.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (models.Voter, error) {
	if err := ValidateRegistration(req, s.now()); err != nil {
		return models.Voter{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return models.Voter{}, err
		}
		return models.Voter{}, apperr.Wrap(apperr.KindStorage, "failed to hash password", err)
	}

	v := models.Voter{
		VoterID:      strings.TrimSpace(req.VoterID),
		FirstName:    strings.TrimSpace(req.FirstName),
		MiddleName:   strings.TrimSpace(req.MiddleName),
		LastName:     strings.TrimSpace(req.LastName),
		Mobile:       req.Mobile,
		Aadhar:       req.Aadhar,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		DateOfBirth:  req.DOB,
		Address:      strings.TrimSpace(req.Address),
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}

	_, err = db.Session(ctx, s.db).ExecContext(ctx, `
		INSERT INTO voters (voter_id, first_name, middle_name, last_name, mobile, aadhar, email,
			date_of_birth, residential_address, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, v.VoterID, v.FirstName, v.MiddleName, v.LastName, v.Mobile, v.Aadhar, v.Email,
		v.DateOfBirth, v.Address, v.PasswordHash, v.Active, v.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Voter{}, ErrDuplicateVoter
		}
		return models.Voter{}, apperr.Storage("failed to create voter", err)
	}

	return v, nil
}

// FindByID returns the voter with voterID, or ErrVoterNotFound.
func (s *Store) FindByID(ctx context.Context, voterID string) (models.Voter, error) {
	var v models.Voter
	var middle sql.NullString
	err := db.Session(ctx, s.db).QueryRowContext(ctx, `
		SELECT voter_id, first_name, middle_name, last_name, mobile, aadhar, email,
			date_of_birth, residential_address, password_hash, is_active, created_at
		FROM voters
		WHERE voter_id = $1
	`, voterID).Scan(&v.VoterID, &v.FirstName, &middle, &v.LastName, &v.Mobile, &v.Aadhar, &v.Email,
		&v.DateOfBirth, &v.Address, &v.PasswordHash, &v.Active, &v.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, ErrVoterNotFound
	}
	if err != nil {
		return models.Voter{}, apperr.Storage("failed to query voter", err)
	}
	v.MiddleName = middle.String
	return v, nil
}

// Authenticate checks voterID and password. An unknown voter and a wrong
// password both yield ErrInvalidCredentials; the returned voter is populated
// whenever the voter exists so callers can attribute the attempt.
func (s *Store) Authenticate(ctx context.Context, voterID, password string) (models.Voter, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" || password == "" {
		return models.Voter{}, apperr.New(apperr.KindValidation, "Voter ID and password are required")
	}

	v, err := s.FindByID(ctx, voterID)
	if errors.Is(err, ErrVoterNotFound) {
		return models.Voter{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Voter{}, err
	}

	if !auth.CheckPassword(password, v.PasswordHash) {
		return v, ErrInvalidCredentials
	}
	if !v.Active {
		return v, ErrAccountDeactivated
	}
	return v, nil
}
