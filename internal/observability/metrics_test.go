package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/health", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveLLMRequest("gpt", "/v1/responses", "200", time.Second, 1, 2)
	m.ObserveIngestStep("annotations", nil, time.Millisecond)
	m.AddPatternsMastered(3)
	m.ObserveProgressComparison("improved", 10)
	m.IncEventPublished("analysis.completed", nil)
	require.Nil(t, m.Registry())
}

func TestMetricsCountAndExpose(t *testing.T) {
	m := NewMetrics()
	m.ObserveIngestStep("patterns", nil, time.Millisecond)
	m.ObserveIngestStep("patterns", errors.New("boom"), time.Millisecond)
	m.AddPatternsMastered(2)
	m.ObserveLLMRequest("gpt-5.2", "/v1/responses", "200", time.Second, 10, 5)

	require.InDelta(t, 1, testutil.ToFloat64(m.ingestSteps.WithLabelValues("patterns", "error")), 1e-9)
	require.InDelta(t, 2, testutil.ToFloat64(m.patternsMastered), 1e-9)
	require.InDelta(t, 5, testutil.ToFloat64(m.llmTokens.WithLabelValues("gpt-5.2", "output")), 1e-9)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "writemate_mastery_patterns_mastered_total 2")
}
