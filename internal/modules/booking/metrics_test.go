package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveTransition("select_slot", nil)
	m.ObserveTransition("select_slot", fmt.Errorf("%w: 10:00", ErrSlotUnavailable))
	m.ObserveConfirm(fmt.Errorf("%w: taken", ErrSlotConflict))
	m.ObserveConfirm(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("select_slot", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("select_slot", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirms.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirms.WithLabelValues("error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("start", nil)
		m.ObserveConfirm(nil)
	})
}
