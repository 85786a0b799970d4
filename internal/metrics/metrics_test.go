package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposure(t *testing.T) {
	ObserveAnalysis("estimated", 64, 22)
	IncFallback("unavailable")
	IncCommandRun("analyze")
	IncCommandError("analyze")
	IncHTTPRequest("/v1/analyze/{handle}", http.StatusOK)
	ObserveBatchDuration(time.Now().Add(-1500 * time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, m := range []string{
		"trustscope_analyses_total",
		"trustscope_live_fallbacks_total",
		"trustscope_trust_score",
		"trustscope_bot_percentage",
		"trustscope_command_runs_total",
		"trustscope_command_errors_total",
		"trustscope_http_requests_total",
		"trustscope_batch_duration_seconds",
	} {
		assert.True(t, strings.Contains(body, m), "expected metric %s in body", m)
	}
}

func TestObserveAnalysisLabelsProvenance(t *testing.T) {
	ObserveAnalysis("demo", 90, 5)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `trustscope_analyses_total{provenance="demo"}`)
}
