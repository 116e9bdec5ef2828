package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("GET", "/api/boards", 200, 15*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/boards", 200, 20*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/boards", 500, 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/boards", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("POST", "/api/boards", "5xx")))
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{599, "5xx"},
		{100, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeStatus(tt.code))
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/ready"))
	assert.False(t, ShouldSkipEndpoint("/api/boards"))
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t,
		"/api/internal/users/{id}",
		normalizeEndpoint("/api/internal/users/123e4567-e89b-12d3-a456-426614174000"))
	assert.Equal(t, "/api/internal/users/batch", normalizeEndpoint("/api/internal/users/batch"))
}

func TestRecordExternalAPICall_ErrorTypes(t *testing.T) {
	m := newTestMetrics()

	m.RecordExternalAPICall("/api/internal/users/123e4567-e89b-12d3-a456-426614174000", "GET", 404, time.Millisecond, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.ExternalAPIErrors.WithLabelValues("/api/internal/users/{id}", "not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.ExternalAPIRequestsTotal.WithLabelValues("/api/internal/users/{id}", "GET", "404")))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, "unauthorized", getErrorType(401, nil))
	assert.Equal(t, "too_many_requests", getErrorType(429, nil))
	assert.Equal(t, "client_error", getErrorType(418, nil))
	assert.Equal(t, "service_unavailable", getErrorType(503, nil))
	assert.Equal(t, "server_error", getErrorType(599, nil))
	assert.Equal(t, "connection_refused", getErrorType(0, errors.New("dial tcp 10.0.0.1:80: connection refused")))
	assert.Equal(t, "timeout", getErrorType(0, errors.New("context deadline exceeded")))
	assert.Equal(t, "network_error", getErrorType(0, assert.AnError))
	assert.Equal(t, "unknown", getErrorType(0, nil))
}

func TestBusinessGauges(t *testing.T) {
	m := newTestMetrics()

	m.SetBoardsTotal(12)
	m.SetGoalsTotal(30)
	m.IncrementBoardCreated()
	m.IncrementGoalCreated()
	m.IncrementGoalCreated()

	assert.Equal(t, float64(12), testutil.ToFloat64(m.BoardsTotal))
	assert.Equal(t, float64(30), testutil.ToFloat64(m.GoalsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BoardCreatedTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.GoalCreatedTotal))
}

func TestSafeExecute_RecoversPanic(t *testing.T) {
	m := newTestMetrics()

	assert.NotPanics(t, func() {
		m.safeExecute("boom", func() { panic("metric backend gone") })
	})
}
