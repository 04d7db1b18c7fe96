package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	appointmentsTotal *prometheus.CounterVec
	transitionsTotal  *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	submitLatency     prometheus.Histogram
	activeSessions    prometheus.Gauge
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Total appointments appended to the store",
		}, []string{"source", "status"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Wizard step transitions by direction and outcome",
		}, []string{"direction", "outcome"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Wizard confirmations by outcome",
		}, []string{"outcome"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "wizard",
			Name:      "submit_latency_seconds",
			Help:      "Latency of wizard submissions",
			Buckets:   prometheus.DefBuckets,
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinic",
			Subsystem: "wizard",
			Name:      "active_sessions",
			Help:      "Wizard sessions currently held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.appointmentsTotal,
		m.transitionsTotal,
		m.submissionsTotal,
		m.submitLatency,
		m.activeSessions,
	)
	return m
}

func (m *BookingMetrics) ObserveAppointment(source string, err error) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(source, statusLabel(err)).Inc()
}

func (m *BookingMetrics) ObserveTransition(direction string, moved bool) {
	if m == nil {
		return
	}
	outcome := "blocked"
	if moved {
		outcome = "moved"
	}
	m.transitionsTotal.WithLabelValues(direction, outcome).Inc()
}

func (m *BookingMetrics) ObserveSubmission(err error, seconds float64) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(statusLabel(err)).Inc()
	m.submitLatency.Observe(seconds)
}

func (m *BookingMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
