package booking

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts booking transitions and confirm outcomes.
type Metrics struct {
	transitions *prometheus.CounterVec
	confirms    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Draft transitions by operation and outcome",
		}, []string{"operation", "outcome"}),
		confirms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "confirm_total",
			Help:      "Confirm attempts by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.confirms)
	return m
}

func (m *Metrics) ObserveTransition(operation string, err error) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *Metrics) ObserveConfirm(err error) {
	if m == nil {
		return
	}
	m.confirms.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSlotConflict):
		return "conflict"
	case errors.Is(err, ErrSlotUnavailable):
		return "unavailable"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "error"
	}
}
