package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/fitness"
)

func TestMetrics_Recorder(t *testing.T) {
	m := New()

	m.FetchIssued(fitness.Window30)
	m.FetchIssued(fitness.Window30)
	m.FetchResolved(fitness.Window30, fitness.OutcomeStale, 20*time.Millisecond)
	m.FetchResolved(fitness.Window30, fitness.OutcomeReady, 40*time.Millisecond)
	m.FetchResolved(fitness.Window90, fitness.OutcomeReady, 0)
	m.IntegrityWarning(fitness.Window30)

	assert.InDelta(t, 2, testutil.ToFloat64(m.FetchesIssued.WithLabelValues("30")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchesResolved.WithLabelValues("30", "stale")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchesResolved.WithLabelValues("30", "ready")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchesResolved.WithLabelValues("90", "ready")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.IntegrityWarnings.WithLabelValues("30")), 0)

	// Zero elapsed is not observed.
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RevealStreamsActive.Inc()
	m.RevealFramesTotal.Add(6)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "portfolio_reveal_frames_total 6")
	assert.Contains(t, body, "portfolio_reveal_streams_active 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestOutcomeLabels(t *testing.T) {
	assert.Equal(t, "stale", fitness.OutcomeStale.String())
	assert.Equal(t, "failed", fitness.OutcomeFailed.String())
	assert.Equal(t, "empty", fitness.OutcomeEmpty.String())
}
