package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCalculation(t *testing.T) {
	m := NewMetricsForTesting()

	m.RecordCalculation("NOAA Algorithm", nil)
	m.RecordCalculation("NOAA Algorithm", []string{"sunrise", "sunset"})
	m.RecordCalculation("US Naval Almanac Algorithm", []string{"sunrise"})

	assert.InDelta(t, 2, testutil.ToFloat64(m.Calculations.WithLabelValues("NOAA Algorithm")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Calculations.WithLabelValues("US Naval Almanac Algorithm")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.NoSolution.WithLabelValues("sunrise")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.NoSolution.WithLabelValues("sunset")), 0)
}

func TestHandler_ServesPrivateRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	m.HTTPRequests.WithLabelValues("/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `zmanim_http_requests_total{route="/health",status="200"} 1`)
}

func TestNewMetricsForTesting_Repeatable(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetricsForTesting()
		NewMetricsForTesting()
	})
}
