package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SeparateRegistries(t *testing.T) {
	a := New("travelcard-api")
	b := New("travelcard-api")

	a.UpstreamRequests.WithLabelValues(OutcomeSuccess).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.UpstreamRequests.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.UpstreamRequests.WithLabelValues(OutcomeSuccess)))
}

func TestHandler(t *testing.T) {
	m := New("travelcard-api")
	m.Requests.WithLabelValues("/api/travel-card", http.MethodPost, "200").Inc()
	m.UpstreamLatency.Observe(42)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `travelcard_travelcard_api_http_requests_total{method="POST",route="/api/travel-card",status="200"} 1`)
	assert.Contains(t, body, "travelcard_travelcard_api_upstream_request_duration_ms_count 1")
	assert.Contains(t, body, "go_goroutines")
}
