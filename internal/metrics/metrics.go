package metrics

import "github.com/prometheus/client_golang/prometheus"

// WizardMetrics counts what visitors do with the booking wizard.
type WizardMetrics struct {
	transitions    *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	invites        prometheus.Counter
	sessions       prometheus.Counter
	requestLatency *prometheus.HistogramVec
}

func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	m := &WizardMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Wizard operations by name and outcome",
		}, []string{"op", "outcome"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "wizard",
			Name:      "form_field_errors_total",
			Help:      "Booking form submissions rejected, per offending field",
		}, []string{"field"}),
		invites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "wizard",
			Name:      "invites_downloaded_total",
			Help:      "Invite files served",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "wizard",
			Name:      "sessions_started_total",
			Help:      "Wizard sessions created",
		}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "http",
			Name:      "request_latency_seconds",
			Help:      "Latency of web and gRPC requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.rejected, m.invites, m.sessions, m.requestLatency)
	return m
}

func (m *WizardMetrics) ObserveTransition(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.transitions.WithLabelValues(op, outcome).Inc()
}

func (m *WizardMetrics) ObserveFieldErrors(fields []string) {
	if m == nil {
		return
	}
	for _, f := range fields {
		m.rejected.WithLabelValues(f).Inc()
	}
}

func (m *WizardMetrics) ObserveInvite() {
	if m == nil {
		return
	}
	m.invites.Inc()
}

func (m *WizardMetrics) ObserveSession() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *WizardMetrics) ObserveLatency(transport, route string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(transport, route).Observe(seconds)
}
