package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for status lookups
type Metrics struct {
	// API request metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Last observed server state
	ServerOnline  *prometheus.GaugeVec
	ServerPlayers *prometheus.GaugeVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcstatus_requests_total",
				Help: "Total mcstatus.io API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcstatus_request_duration_seconds",
				Help:    "mcstatus.io API request latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),

		ServerOnline: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcstatus_server_online",
				Help: "Whether the server was online at the last lookup (1=online, 0=offline)",
			},
			[]string{"edition", "address"},
		),

		ServerPlayers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcstatus_server_players",
				Help: "Online players at the last lookup",
			},
			[]string{"edition", "address"},
		),
	}
}

// ObserveRequest implements mcstatus.Observer
func (m *Metrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveStatus records the result of a successful lookup
func (m *Metrics) ObserveStatus(edition, address string, online bool, players int) {
	m.ServerOnline.WithLabelValues(edition, address).Set(boolToFloat(online))
	m.ServerPlayers.WithLabelValues(edition, address).Set(float64(players))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
