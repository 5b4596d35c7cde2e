package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the public booking flow.
type BookingMetrics struct {
	bookingsTotal   *prometheus.CounterVec
	slotQueries     prometheus.Counter
	bookingLatency  prometheus.Histogram
	messagesTotal   *prometheus.CounterVec
	retentionSweeps prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total booking attempts by outcome",
		}, []string{"outcome"}),
		slotQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "slot_queries_total",
			Help:      "Total availability lookups",
		}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "transaction_seconds",
			Help:      "Latency of the booking transaction",
			Buckets:   prometheus.DefBuckets,
		}),
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "messages",
			Name:      "generated_total",
			Help:      "Generated messages by type and source (llm or fallback)",
		}, []string{"type", "source"}),
		retentionSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "retention",
			Name:      "sweeps_total",
			Help:      "Retention candidate sweeps executed",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.slotQueries, m.bookingLatency, m.messagesTotal, m.retentionSweeps)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.bookingLatency.Observe(seconds)
	}
}

func (m *BookingMetrics) ObserveSlotQuery() {
	if m == nil {
		return
	}
	m.slotQueries.Inc()
}

func (m *BookingMetrics) ObserveMessage(msgType string, fallback bool) {
	if m == nil {
		return
	}
	source := "llm"
	if fallback {
		source = "fallback"
	}
	m.messagesTotal.WithLabelValues(msgType, source).Inc()
}

func (m *BookingMetrics) ObserveRetentionSweep() {
	if m == nil {
		return
	}
	m.retentionSweeps.Inc()
}
