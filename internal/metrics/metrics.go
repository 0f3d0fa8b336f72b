package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsCreated prometheus.Counter
	StatusUpdates   *prometheus.CounterVec
	Extractions     *prometheus.CounterVec
	Suggestions     *prometheus.CounterVec
}

// New registers all metrics with the given registerer. Tests pass a fresh
// registry so packages can be tested in isolation.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "procurement_requests_created_total",
			Help: "Total number of procurement requests created.",
		}),
		StatusUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_status_updates_total",
			Help: "Total number of status updates, by target status.",
		}, []string{"status"}),
		Extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_extractions_total",
			Help: "Total number of document extractions, by outcome.",
		}, []string{"outcome"}),
		Suggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_suggestions_total",
			Help: "Total number of commodity group suggestions, by outcome.",
		}, []string{"outcome"}),
	}
}
