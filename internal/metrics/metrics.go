package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the portal's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	SubmissionsTotal       *prometheus.CounterVec
	StatusTransitionsTotal *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "magang_submissions_total",
			Help: "Application submissions by outcome (accepted or error kind)",
		}, []string{"outcome"}),
		StatusTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "magang_status_transitions_total",
			Help: "Application status changes made by staff, by target status",
		}, []string{"status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "magang_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncStatusTransition(status string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest records a request duration. Call with time.Now() taken
// before the request was handled.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
