package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/testutil"
)

func TestGetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := New(db)
	ctx := context.Background()

	testutil.CreateTestElection(t, db, 1, models.StatusUpcoming)
	testutil.CreateTestElection(t, db, 2, models.StatusActive)
	testutil.CreateTestElection(t, db, 3, models.StatusCompleted)

	tests := []struct {
		name       string
		electionID int64
		want       models.ElectionStatus
		wantErr    error
	}{
		{"upcoming", 1, models.StatusUpcoming, nil},
		{"active", 2, models.StatusActive, nil},
		{"completed", 3, models.StatusCompleted, nil},
		{"unknown", 99, "", ErrElectionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := reg.GetStatus(ctx, tt.electionID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestListElections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := New(db)
	ctx := context.Background()

	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.CreateTestElection(t, db, 2, models.StatusActive)
	testutil.CreateTestElection(t, db, 3, models.StatusUpcoming)

	active, err := reg.ListElections(ctx, models.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// newest start first
	assert.Equal(t, int64(2), active[0].ID)
	assert.Equal(t, int64(1), active[1].ID)
	assert.Equal(t, "Election 2", active[0].Name)

	completed, err := reg.ListElections(ctx, models.StatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, completed)
	assert.Empty(t, completed)

	_, err = reg.ListElections(ctx, "paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListCandidatesOrderedByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := New(db)
	ctx := context.Background()

	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.CreateTestElection(t, db, 2, models.StatusActive)
	testutil.AddTestCandidate(t, db, 1, 30, "Charlie")
	testutil.AddTestCandidate(t, db, 1, 10, "Alice")
	testutil.AddTestCandidate(t, db, 1, 20, "Bob")
	testutil.AddTestCandidate(t, db, 2, 40, "Dana")

	candidates, err := reg.ListCandidates(ctx, 1)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, []int64{10, 20, 30}, []int64{candidates[0].ID, candidates[1].ID, candidates[2].ID})
	assert.Equal(t, "Alice Party", candidates[0].Party)

	// repeated reads are identical
	again, err := reg.ListCandidates(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, candidates, again)

	none, err := reg.ListCandidates(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHasCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := New(db)
	ctx := context.Background()

	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.CreateTestElection(t, db, 2, models.StatusActive)
	testutil.AddTestCandidate(t, db, 1, 10, "Alice")
	testutil.AddTestCandidate(t, db, 2, 20, "Bob")

	ok, err := reg.HasCandidate(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.HasCandidate(ctx, 1, 20)
	require.NoError(t, err)
	assert.False(t, ok, "candidate from another election")

	ok, err = reg.HasCandidate(ctx, 1, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := New(db)
	ctx := context.Background()

	counts, err := reg.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.ElectionStatus]int{
		models.StatusUpcoming:  0,
		models.StatusActive:    0,
		models.StatusCompleted: 0,
	}, counts)

	testutil.CreateTestElection(t, db, 1, models.StatusActive)
	testutil.CreateTestElection(t, db, 2, models.StatusActive)
	testutil.CreateTestElection(t, db, 3, models.StatusCompleted)

	counts, err = reg.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.StatusActive])
	assert.Equal(t, 0, counts[models.StatusUpcoming])
	assert.Equal(t, 1, counts[models.StatusCompleted])
}

func TestStorageFailureIsClassified(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := New(db)
	db.Close()

	_, err := reg.GetStatus(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))
	assert.NotErrorIs(t, err, ErrElectionNotFound)
}
