package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.IncVotesCast()
	m.IncVotesCast()
	m.IncVoteRejection("already_voted")
	m.IncLogin("success")
	m.IncRegistrations()
	m.IncAuditFailures()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VotesCast))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VoteRejections.WithLabelValues("already_voted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.VoteRejections.WithLabelValues("election_not_active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditFailures))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncVotesCast()
		m.IncVoteRejection("x")
		m.IncLogin("x")
		m.IncRegistrations()
		m.IncAuditFailures()
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.IncVotesCast()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "eballot_votes_cast_total 1"))
}
