package nas

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the prometheus counters of one server.
type Metrics struct {
	registry *prometheus.Registry

	Requests         *prometheus.CounterVec
	Logins           prometheus.Counter
	TranscriptErrors prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nas_requests_total",
			Help: "Total requests by endpoint",
		}, []string{"endpoint"}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nas_logins_total",
			Help: "Total login responses issued",
		}),
		TranscriptErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nas_transcript_errors_total",
			Help: "Transcripts that could not be written",
		}),
	}
	m.registry.MustRegister(m.Requests, m.Logins, m.TranscriptErrors)
	return m
}

// Handler serves the metrics in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
