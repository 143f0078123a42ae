package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trxclicker/internal/core/port"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	reg *prometheus.Registry

	DepositsProcessed *prometheus.CounterVec
	PollErrors        *prometheus.CounterVec
	PollDuration      prometheus.Histogram
	Decisions         *prometheus.CounterVec
	Reservations      *prometheus.CounterVec
}

// New registers all collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		DepositsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trxclicker_deposits_processed_total",
			Help: "Feed records handled by the deposit ingestor, by result.",
		}, []string{"result"}),
		PollErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trxclicker_deposit_poll_errors_total",
			Help: "Deposit poll failures, by stage.",
		}, []string{"stage"}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trxclicker_deposit_poll_duration_seconds",
			Help:    "Duration of one deposit poll cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trxclicker_admin_decisions_total",
			Help: "Admin decisions on pending entities, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		Reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trxclicker_reservations_total",
			Help: "Reservation attempts, by kind and result.",
		}, []string{"kind", "result"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DepositsProcessed, m.PollErrors, m.PollDuration, m.Decisions, m.Reservations,
	)
	return m
}

// ObserveIngest adds the counts of one ingest cycle.
func (m *Metrics) ObserveIngest(r port.IngestReport, took time.Duration) {
	m.DepositsProcessed.WithLabelValues("credited").Add(float64(r.Credited))
	m.DepositsProcessed.WithLabelValues("unattributed").Add(float64(r.Unattributed))
	m.DepositsProcessed.WithLabelValues("duplicate").Add(float64(r.Duplicates))
	m.DepositsProcessed.WithLabelValues("below_minimum").Add(float64(r.BelowMinimum))
	m.DepositsProcessed.WithLabelValues("malformed").Add(float64(r.Malformed))
	m.PollDuration.Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// HealthFunc reports whether a dependency is reachable.
type HealthFunc func(ctx context.Context) error

// HealthHandler answers 200 "ok" when every check passes within 500ms.
func HealthHandler(checks map[string]HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		for name, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, name+": "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
