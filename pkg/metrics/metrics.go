package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcomes recorded by the appointment lifecycle
const (
	OutcomeBooked      = "booked"
	OutcomeUnslotted   = "unslotted"
	OutcomeConflict    = "conflict"
	OutcomeCancelled   = "cancelled"
	OutcomeCheckedIn   = "checked_in"
	OutcomeCompleted   = "completed"
	OutcomeSlotRestore = "slot_restored"
	OutcomeSlotAppend  = "slot_appended"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Appointment lifecycle metrics
	AppointmentEvents *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),
		AppointmentEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "events_total",
			Help:      "Appointment lifecycle events by outcome",
		}, []string{"outcome"}),
	}
}

// RecordAppointment counts one lifecycle event. A nil Metrics records nothing.
func (m *Metrics) RecordAppointment(outcome string) {
	if m == nil {
		return
	}
	m.AppointmentEvents.WithLabelValues(outcome).Inc()
}
