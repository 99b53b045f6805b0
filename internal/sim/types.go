// Package sim runs the discrete-time control loop: at each step it samples
// the plant, asks the controller for a control output, and records the
// sampled series.
package sim

// Config holds the parameters of one simulation run.
type Config struct {
	Dt       float64
	Duration float64
	Setpoint float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.1,
		Duration: 100.0,
		Setpoint: 1.0,
	}
}

// Result is the recorded series of one run. All slices share indexing: row i
// was sampled at Times[i]. Output is the compensated response Process+Control.
type Result struct {
	Times      []float64
	Process    []float64
	Control    []float64
	Output     []float64
	Metrics    map[string]float64
	StepsTaken int
}
