package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	InfractionsCreated    *prometheus.CounterVec
	InfractionsSuperseded prometheus.Counter
	InfractionUpdates     prometheus.Counter
	JamGateChecks         *prometheus.CounterVec
	JamApplications       prometheus.Counter
	RequestDuration       *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		InfractionsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_infractions_created_total",
			Help: "Total number of infractions created, by type",
		}, []string{"type"}),
		InfractionsSuperseded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warden_infractions_superseded_total",
			Help: "Total number of active infractions deactivated by a newer one of the same type",
		}),
		InfractionUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warden_infraction_updates_total",
			Help: "Total number of infraction update operations that matched a record",
		}),
		JamGateChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_jam_gate_checks_total",
			Help: "Total number of jam ban gate evaluations, by outcome",
		}, []string{"outcome"}),
		JamApplications: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warden_jam_applications_total",
			Help: "Total number of accepted code jam applications",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "warden_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
