package metrics

import (
	"math"
	"testing"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	m.Observe(0, 2.0, 0)
	m.Observe(0, -4.0, 0.1)

	if got := m.Value(); math.Abs(got-3.0) > 1e-12 {
		t.Errorf("expected mean effort 3.0, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero effort after reset")
	}
}

func TestControlEffortEmpty(t *testing.T) {
	m := NewControlEffort()
	if m.Value() != 0 {
		t.Error("expected zero value with no samples")
	}
}

func TestTrackingError(t *testing.T) {
	m := NewTrackingError(1.0)

	// pv+u == setpoint: no error.
	m.Observe(0.4, 0.6, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero tracking error, got %f", m.Value())
	}

	// pv+u == 0.5: deviation 0.5, mean over two samples 0.25.
	m.Observe(0.5, 0.0, 0.1)
	if got := m.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected tracking error 0.25, got %f", got)
	}
}
