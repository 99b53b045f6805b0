package sim

import (
	"context"
	"math"

	"github.com/pskrzyn/geosim/internal/control"
	"github.com/pskrzyn/geosim/internal/metrics"
	"github.com/pskrzyn/geosim/internal/plant"
)

// Observer receives every recorded step as it happens.
type Observer interface {
	OnStep(pv, u, t float64)
}

// Runner drives one plant/controller pair through a run.
type Runner struct {
	plant     plant.Plant
	ctrl      control.Controller
	metrics   []metrics.Metric
	observers []Observer
}

func New(p plant.Plant, ctrl control.Controller) *Runner {
	return &Runner{
		plant:     p,
		ctrl:      ctrl,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run steps the loop from t=0 through cfg.Duration inclusive. Each step
// samples pv = plant.Value(t), computes u = ctrl.Compute(pv, t) and records
// (t, pv, u, pv+u). A non-finite sample stops the run early; the partial
// result is returned alongside the error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt) + 1
	result := &Result{
		Times:   make([]float64, 0, steps),
		Process: make([]float64, 0, steps),
		Control: make([]float64, 0, steps),
		Output:  make([]float64, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; t <= cfg.Duration; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		pv := r.plant.Value(t)
		u := r.ctrl.Compute(pv, t)

		if !finite(pv) || !finite(u) {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidSample}
		}

		for _, m := range r.metrics {
			m.Observe(pv, u, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(pv, u, t)
		}

		result.Times = append(result.Times, t)
		result.Process = append(result.Process, pv)
		result.Control = append(result.Control, u)
		result.Output = append(result.Output, pv+u)
		result.StepsTaken++

		t += cfg.Dt
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return ErrBadTimestep
	}
	if cfg.Duration <= 0 {
		return ErrBadDuration
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
