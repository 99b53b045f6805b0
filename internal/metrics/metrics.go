// Package metrics aggregates per-step observations of the control loop into
// scalar summary values.
package metrics

import "math"

// Metric observes every simulation step and reduces the series to one value.
type Metric interface {
	Name() string
	Observe(pv, u, t float64)
	Value() float64
	Reset()
}

// ControlEffort reports the mean absolute control output.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(pv, u, t float64) {
	c.sum += math.Abs(u)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// TrackingError reports the mean absolute deviation of the compensated
// output pv+u from the setpoint.
type TrackingError struct {
	name     string
	setpoint float64
	sum      float64
	samples  int
}

func NewTrackingError(setpoint float64) *TrackingError {
	return &TrackingError{name: "tracking_error", setpoint: setpoint}
}

func (e *TrackingError) Name() string {
	return e.name
}

func (e *TrackingError) Observe(pv, u, t float64) {
	e.sum += math.Abs(e.setpoint - (pv + u))
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *TrackingError) Reset() {
	e.sum = 0
	e.samples = 0
}
