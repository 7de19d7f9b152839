// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/eballot/auth"
	"github.com/danielhkuo/eballot/cliparse"
	"github.com/danielhkuo/eballot/db"
	"github.com/danielhkuo/eballot/models"
)

// TestPassword is the password every fixture voter is registered with
const TestPassword = "correct-horse-battery"

// TestSecret signs tokens in tests
const TestSecret = "test-jwt-secret"

var seq atomic.Int64

func nextSeq() int64 {
	return seq.Add(1)
}

func init() {
	// bcrypt at default cost makes fixture setup slow
	auth.PasswordCost = 4
}

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "eballot_test.db")
	return openAndMigrate(t, cfg)
}

// SetupPostgresDB connects to TEST_DATABASE_URL, drops all tables and
// recreates the schema. Skips the test when the variable is unset.
func SetupPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := GetTestConfig()
	cfg.DatabaseType = cliparse.DatabasePostgres
	cfg.DatabaseURL = url

	conn, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Clean up tables before each test
	_, err = conn.Exec(`
		DROP TABLE IF EXISTS audit_logs CASCADE;
		DROP TABLE IF EXISTS votes CASCADE;
		DROP TABLE IF EXISTS candidates CASCADE;
		DROP TABLE IF EXISTS elections CASCADE;
		DROP TABLE IF EXISTS voters CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	conn.Close()

	return openAndMigrate(t, cfg)
}

func openAndMigrate(t *testing.T, cfg cliparse.Config) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  "file::memory:",
		JWTSecret:    TestSecret,
		TokenTTL:     time.Hour,
	}
}

// CreateTestVoter registers an active voter with TestPassword
func CreateTestVoter(t *testing.T, conn *sql.DB, voterID string) models.Voter {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	// Derive unique contact fields from a counter so fixtures never collide
	n := nextSeq()
	v := models.Voter{
		VoterID:      voterID,
		FirstName:    "Test",
		LastName:     "Voter",
		Mobile:       fmt.Sprintf("9%09d", n),
		Aadhar:       fmt.Sprintf("1%011d", n),
		Email:        fmt.Sprintf("voter%d@example.com", n),
		DateOfBirth:  "1990-01-01",
		Address:      "1 Test Street",
		PasswordHash: hash,
		Active:       true,
	}

	_, err = conn.Exec(`
		INSERT INTO voters (voter_id, first_name, middle_name, last_name, mobile, aadhar, email,
			date_of_birth, residential_address, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, v.VoterID, v.FirstName, v.MiddleName, v.LastName, v.Mobile, v.Aadhar, v.Email,
		v.DateOfBirth, v.Address, v.PasswordHash, v.Active, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return v
}

// DeactivateTestVoter clears a voter's active flag
func DeactivateTestVoter(t *testing.T, conn *sql.DB, voterID string) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE voters SET is_active = $1 WHERE voter_id = $2`, false, voterID); err != nil {
		t.Fatalf("Failed to deactivate test voter: %v", err)
	}
}

// CreateTestElection creates an election with the given ID and status
func CreateTestElection(t *testing.T, conn *sql.DB, electionID int64, status models.ElectionStatus) models.Election {
	t.Helper()

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(electionID) * time.Hour)
	e := models.Election{
		ID:          electionID,
		Name:        fmt.Sprintf("Election %d", electionID),
		Description: "A test election",
		StartDate:   start,
		EndDate:     start.Add(48 * time.Hour),
		Status:      status,
	}

	_, err := conn.Exec(`
		INSERT INTO elections (election_id, election_name, description, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.Name, e.Description, e.StartDate, e.EndDate, string(e.Status))
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return e
}

// AddTestCandidate adds a candidate to an election
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, candidateID int64, name string) models.Candidate {
	t.Helper()

	c := models.Candidate{
		ID:         candidateID,
		ElectionID: electionID,
		Name:       name,
		Party:      name + " Party",
	}

	_, err := conn.Exec(`
		INSERT INTO candidates (candidate_id, election_id, candidate_name, party_name, description, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.ElectionID, c.Name, c.Party, c.Description, c.PhotoURL)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return c
}

// InsertTestVote writes a vote row directly, bypassing the ledger's checks
func InsertTestVote(t *testing.T, conn *sql.DB, voterID string, electionID, candidateID int64) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO votes (vote_id, voter_id, election_id, candidate_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, voterID, electionID, candidateID, "127.0.0.1", time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CountRows runs a COUNT(*) query and returns the result
func CountRows(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// TokenFor issues a valid token for voterID using the test secret
func TokenFor(t *testing.T, voterID string) string {
	t.Helper()

	cfg := GetTestConfig()
	token, _, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL).Issue(voterID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// AuthHeader returns an Authorization header map for voterID
func AuthHeader(t *testing.T, voterID string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TokenFor(t, voterID)}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
