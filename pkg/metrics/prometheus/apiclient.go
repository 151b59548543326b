package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/fedctl/pkg/apiclient"
	"github.com/marmos91/fedctl/pkg/metrics"
)

// apiClientMetrics is the Prometheus implementation of apiclient.Metrics.
type apiClientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewAPIClientMetrics returns collectors for admin API calls, or nil when
// metrics are disabled.
func NewAPIClientMetrics() apiclient.Metrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return nil
	}

	return &apiClientMetrics{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fedctl_admin_requests_total",
				Help: "Admin API requests by resource, operation and HTTP status",
			},
			[]string{"resource", "operation", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fedctl_admin_request_duration_milliseconds",
				Help:    "Admin API request latency in milliseconds",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
			},
			[]string{"resource", "operation"},
		),
	}
}

// ObserveRequest implements apiclient.Metrics. Status 0 means the request
// never got a response.
func (m *apiClientMetrics) ObserveRequest(resource, operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(resource, operation, code).Inc()
	m.requestDuration.WithLabelValues(resource, operation).Observe(float64(duration.Microseconds()) / 1000.0)
}
