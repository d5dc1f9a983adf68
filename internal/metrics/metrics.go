package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	PayoutsExecuted         prometheus.Counter
	PayoutAmount            *prometheus.CounterVec
	ContributionTransitions *prometheus.CounterVec
	RejectedMutations       *prometheus.CounterVec
	RoundsAdvanced          prometheus.Counter
	IntegrityViolations     prometheus.Gauge
	Degraded                prometheus.Gauge
	IntegrityCheckDuration  prometheus.Histogram
	RequestCount            *prometheus.CounterVec
	RequestDuration         *prometheus.HistogramVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		PayoutsExecuted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "equb_payouts_executed_total",
				Help: "Total payouts executed.",
			},
		),
		PayoutAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equb_payout_amount_total",
				Help: "Total amount paid out, per currency.",
			},
			[]string{"currency"},
		),
		ContributionTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equb_contribution_transitions_total",
				Help: "Contributions entering a status.",
			},
			[]string{"status"},
		),
		RejectedMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equb_rejected_mutations_total",
				Help: "Mutations refused by the ledger engine.",
			},
			[]string{"operation", "reason"},
		),
		RoundsAdvanced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "equb_rounds_advanced_total",
				Help: "Total rounds advanced.",
			},
		),
		IntegrityViolations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "equb_integrity_violations",
				Help: "Violations found by the last integrity check.",
			},
		),
		Degraded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "equb_degraded",
				Help: "1 while the ledger is in degraded mode.",
			},
		),
		IntegrityCheckDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "equb_integrity_check_duration_seconds",
				Help:    "Integrity check duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	registry.MustRegister(
		m.PayoutsExecuted,
		m.PayoutAmount,
		m.ContributionTransitions,
		m.RejectedMutations,
		m.RoundsAdvanced,
		m.IntegrityViolations,
		m.Degraded,
		m.IntegrityCheckDuration,
		m.RequestCount,
		m.RequestDuration,
	)
	return m
}

func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObservePayout(currency string, amount float64) {
	if m == nil {
		return
	}
	m.PayoutsExecuted.Inc()
	m.PayoutAmount.WithLabelValues(currency).Add(amount)
}

func (m *Metrics) IncContribution(status string) {
	if m == nil {
		return
	}
	m.ContributionTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRejected(operation, reason string) {
	if m == nil {
		return
	}
	m.RejectedMutations.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) IncRoundAdvanced() {
	if m == nil {
		return
	}
	m.RoundsAdvanced.Inc()
}

func (m *Metrics) ObserveIntegrityCheck(violations int, degraded bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.IntegrityViolations.Set(float64(violations))
	if degraded {
		m.Degraded.Set(1)
	} else {
		m.Degraded.Set(0)
	}
	m.IntegrityCheckDuration.Observe(duration.Seconds())
}

// Middleware records request count and latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		status := strconv.Itoa(code)
		m.RequestCount.WithLabelValues(r.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}
