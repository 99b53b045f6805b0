package control

// Controller maps a process variable and time to a control output.
type Controller interface {
	Compute(pv, t float64) float64
}

// PID is a proportional-integral-derivative controller with a fixed
// timestep. The integral accumulates with the gain folded in, using the
// trapezoidal rule, and is clamped to [-IntegralLimit, IntegralLimit] to
// prevent windup. The output is clamped to [-OutputLimit, OutputLimit].
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Dt       float64
	Setpoint float64

	// IntegralLimit and OutputLimit bound the accumulated integral and the
	// control output respectively.
	IntegralLimit float64
	OutputLimit   float64

	integral float64
	prevErr  float64
}

const defaultLimit = 5.0

func NewPID(kp, ki, kd, dt, setpoint float64) *PID {
	return &PID{
		Kp:            kp,
		Ki:            ki,
		Kd:            kd,
		Dt:            dt,
		Setpoint:      setpoint,
		IntegralLimit: defaultLimit,
		OutputLimit:   defaultLimit,
	}
}

func (p *PID) Compute(pv, t float64) float64 {
	err := p.Setpoint - pv

	proportional := p.Kp * err

	p.integral += p.Ki * (err + p.prevErr) * p.Dt / 2
	p.integral = clamp(p.integral, p.IntegralLimit)

	derivative := p.Kd * (err - p.prevErr) / p.Dt

	p.prevErr = err

	return clamp(proportional+p.integral+derivative, p.OutputLimit)
}

// Reset clears integral and derivative state.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
}

// GetParams returns tunable parameters for live adjustment.
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":       p.Kp,
		"Ki":       p.Ki,
		"Kd":       p.Kd,
		"Setpoint": p.Setpoint,
	}
}

// SetParam adjusts a PID parameter.
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Setpoint":
		p.Setpoint = value
	}
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
