package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the analyzer's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	reports          *prometheus.CounterVec
	historyEntries   prometheus.Gauge
	wsClients        prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafe",
			Name:      "analyses_total",
			Help:      "Analysis runs by outcome",
		}, []string{"outcome"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cafe",
			Name:      "analysis_duration_seconds",
			Help:      "Capture to result latency of successful analyses",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafe",
			Name:      "reports_total",
			Help:      "Generated reports by format and outcome",
		}, []string{"format", "outcome"}),
		historyEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cafe",
			Name:      "history_entries",
			Help:      "Entries currently kept in the analysis history",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cafe",
			Name:      "notification_clients",
			Help:      "Connected notification websocket clients",
		}),
	}

	m.registry.MustRegister(
		m.analyses,
		m.analysisDuration,
		m.reports,
		m.historyEntries,
		m.wsClients,
		collectors.NewGoCollector(),
	)

	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) ObserveAnalysis(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		m.analysisDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveReport(format string, err error) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(format, outcome(err)).Inc()
}

func (m *Metrics) SetHistoryEntries(n int) {
	if m == nil {
		return
	}
	m.historyEntries.Set(float64(n))
}

func (m *Metrics) SetNotificationClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
