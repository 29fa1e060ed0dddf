package router

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRouterMetrics_VisibleOnDefaultRegistry(t *testing.T) {
	m := initRouterMetrics("routertest")
	m.requestTotal.WithLabelValues("GET", "/api/v1/health", "200").Inc()
	m.requestDuration.WithLabelValues("GET", "/api/v1/health", "200").Observe(0.01)
	m.errorTotal.WithLabelValues("GET", "/api/v1/health", "http").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["routertest_requests_total"])
	assert.True(t, names["routertest_request_duration_seconds"])
	assert.True(t, names["routertest_errors_total"])
}
