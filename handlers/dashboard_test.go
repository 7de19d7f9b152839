// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/testutil"
)

func TestDashboardStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := asVoter(NewDashboardHandler(db).Stats)

	testutil.CreateTestVoter(t, db, "VOTER001")
	testutil.CreateTestVoter(t, db, "VOTER002")
	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.CreateTestElection(t, db, 2, models.StatusActive)
	testutil.CreateTestElection(t, db, 3, models.StatusUpcoming)
	testutil.AddTestCandidate(t, db, 1, 10, "Alice")
	testutil.AddTestCandidate(t, db, 2, 20, "Bob")
	testutil.InsertTestVote(t, db, "VOTER001", 1, 10)
	testutil.InsertTestVote(t, db, "VOTER001", 2, 20)
	testutil.InsertTestVote(t, db, "VOTER002", 1, 10)

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/api/dashboard/stats", nil, testutil.AuthHeader(t, "VOTER001")))

	testutil.AssertStatus(t, w, http.StatusOK)
	var stats models.DashboardStats
	testutil.AssertJSON(t, w, &stats)
	assert.Equal(t, models.DashboardStats{
		ActiveElections:    2,
		UpcomingElections:  1,
		CompletedElections: 0,
		VotesCast:          2,
	}, stats)
}
