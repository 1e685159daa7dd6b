package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records cart activity, quote handoffs and session housekeeping.
type QuoteMetrics struct {
	cartMutations  *prometheus.CounterVec
	quotes         *prometheus.CounterVec
	activeSessions prometheus.Gauge
	jobDuration    *prometheus.HistogramVec
	jobRuns        *prometheus.CounterVec
	evicted        prometheus.Counter
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
// A nil registerer yields a recorder whose methods do nothing.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	m := &QuoteMetrics{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Effective cart mutations by operation.",
		}, []string{"op"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Rendered quote messages by outcome.",
		}, []string{"outcome"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quote_sessions_active",
			Help: "Cart sessions currently held in memory.",
		}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Duration of background jobs in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_runs_total",
			Help: "Background job executions by status.",
		}, []string{"job", "status"}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quote_sessions_evicted_total",
			Help: "Idle cart sessions dropped by the sweeper.",
		}),
	}
	reg.MustRegister(m.cartMutations, m.quotes, m.activeSessions, m.jobDuration, m.jobRuns, m.evicted)
	return m
}

// IncCartMutation counts one applied cart operation.
func (m *QuoteMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncQuote counts one rendered quote.
func (m *QuoteMetrics) IncQuote(outcome string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *QuoteMetrics) SetActiveSessions(n int) {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

// ObserveJob records one run of the named background job. A non-nil err counts as a failure.
func (m *QuoteMetrics) ObserveJob(job string, duration time.Duration, err error) {
	if m == nil || m.jobDuration == nil {
		return
	}
	job = normalizeLabel(job)
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
	m.jobRuns.WithLabelValues(job, status).Inc()
}

func (m *QuoteMetrics) AddEvicted(n int) {
	if m == nil || m.evicted == nil || n <= 0 {
		return
	}
	m.evicted.Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
