package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fedctl/pkg/metrics"
)

func TestNewAPIClientMetricsDisabled(t *testing.T) {
	metrics.Reset()
	assert.Nil(t, NewAPIClientMetrics())
	assert.Nil(t, NewHTTPMetrics("stub"))
}

func TestObserveRequest(t *testing.T) {
	metrics.InitRegistry()
	t.Cleanup(metrics.Reset)

	m := NewAPIClientMetrics()
	require.NotNil(t, m)

	m.ObserveRequest("openid-federations", "find", 200, 12*time.Millisecond)
	m.ObserveRequest("openid-federations", "find", 200, 8*time.Millisecond)
	m.ObserveRequest("openid-federations", "del", 0, time.Millisecond)

	impl := m.(*apiClientMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(impl.requestsTotal.WithLabelValues("openid-federations", "find", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.requestsTotal.WithLabelValues("openid-federations", "del", "error")))
}

func TestObserveRequestNilReceiver(t *testing.T) {
	var m *apiClientMetrics
	assert.NotPanics(t, func() { m.ObserveRequest("realms", "update", 204, time.Millisecond) })
}
