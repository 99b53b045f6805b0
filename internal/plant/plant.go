// Package plant provides closed-form process models for the control loop.
package plant

import "math"

// Plant is a process with a known response at time t.
type Plant interface {
	Value(t float64) float64
}

// FirstOrderLag is the step response of a first-order system,
// y(t) = 1 - exp(-t/Tau).
type FirstOrderLag struct {
	Tau float64
}

func NewFirstOrderLag(tau float64) *FirstOrderLag {
	return &FirstOrderLag{Tau: tau}
}

func (f *FirstOrderLag) Value(t float64) float64 {
	return 1 - math.Exp(-t/f.Tau)
}
