// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/eballot/auth"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
}

var protectedRoutes = []struct {
	method string
	path   string
	body   any
}{
	{"GET", "/api/elections", nil},
	{"GET", "/api/elections/1/candidates", nil},
	{"POST", "/api/vote", models.CastVoteRequest{ElectionID: 1, CandidateID: 10}},
	{"GET", "/api/elections/1/results", nil},
	{"GET", "/api/dashboard/stats", nil},
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testutil.CreateTestVoter(t, db, "VOTER001")
	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.AddTestCandidate(t, db, 1, 10, "Alice")

	// Signed with the right secret, but expired an hour ago
	past := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL,
		auth.WithClock(func() time.Time { return time.Now().Add(-cfg.TokenTTL - time.Hour) }))
	expired, _, err := past.Issue("VOTER001")
	require.NoError(t, err)

	credentials := map[string]map[string]string{
		"missing": nil,
		"expired": {"Authorization": "Bearer " + expired},
		"garbage": {"Authorization": "Bearer abc.def.ghi"},
	}

	for _, route := range protectedRoutes {
		for name, headers := range credentials {
			t.Run(route.method+" "+route.path+" "+name, func(t *testing.T) {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, testutil.MakeRequest(route.method, route.path, route.body, headers))
				testutil.AssertStatus(t, w, http.StatusUnauthorized)
			})
		}
	}

	assert.Equal(t, 0, testutil.CountRows(t, db, `SELECT COUNT(*) FROM votes`), "rejected requests must not reach the ledger")
}

func TestProtectedRoutesAcceptValidToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	testutil.CreateTestVoter(t, db, "VOTER001")
	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.AddTestCandidate(t, db, 1, 10, "Alice")

	expected := map[string]int{
		"/api/vote": http.StatusCreated,
	}

	for _, route := range protectedRoutes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(route.method, route.path, route.body, testutil.AuthHeader(t, "VOTER001")))

			want, ok := expected[route.path]
			if !ok {
				want = http.StatusOK
			}
			testutil.AssertStatus(t, w, want)
		})
	}
}

func TestEndToEndVoting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.AddTestCandidate(t, db, 1, 10, "Alice")
	testutil.AddTestCandidate(t, db, 1, 11, "Bob")

	do := func(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		return w
	}

	w := do("POST", "/api/register", models.RegisterRequest{
		VoterID:     "VOTER900",
		FirstName:   "Ravi",
		LastName:    "Kumar",
		Mobile:      "9123456780",
		Aadhar:      "998877665544",
		Email:       "ravi@example.com",
		DOB:         "1985-11-02",
		Address:     "4 Park Street",
		Password:    "s3cret-pass",
		Declaration: true,
	}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do("POST", "/api/login", models.LoginRequest{VoterID: "VOTER900", Password: "s3cret-pass"}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	assert.Equal(t, "Ravi Kumar", login.Voter.Name)
	headers := map[string]string{"Authorization": "Bearer " + login.Token}

	w = do("POST", "/api/vote", models.CastVoteRequest{ElectionID: 1, CandidateID: 11}, headers)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do("POST", "/api/vote", models.CastVoteRequest{ElectionID: 1, CandidateID: 10}, headers)
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = do("GET", "/api/elections/1/results", nil, headers)
	testutil.AssertStatus(t, w, http.StatusOK)
	var results models.TallyResult
	testutil.AssertJSON(t, w, &results)
	assert.Equal(t, 1, results.TotalVotes)
	require.Len(t, results.Results, 2)
	assert.Equal(t, int64(11), results.Results[0].CandidateID)
	assert.InDelta(t, 100, results.Results[0].Percentage, 1e-9)

	w = do("GET", "/api/dashboard/stats", nil, headers)
	var stats models.DashboardStats
	testutil.AssertJSON(t, w, &stats)
	assert.Equal(t, 1, stats.VotesCast)
	assert.Equal(t, 1, stats.ActiveElections)

	w = do("GET", "/metrics", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "eballot_votes_cast_total 1"), "metrics should report the accepted vote")
	assert.Contains(t, body, `eballot_vote_rejections_total{reason="already_voted"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/vote", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
