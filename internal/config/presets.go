package config

var Presets = map[string]*Config{
	// Lightly damped proportional controller with a touch of derivative.
	"smooth": {
		Dt: 0.1, Duration: 100.0, Setpoint: 1.0, Tau: 10.0,
		Controller: ControllerConfig{
			Kind: "pid", Kp: 1.0, Ki: 0.0, Kd: 0.02,
			IntegralLimit: DefaultLimit, OutputLimit: DefaultLimit,
		},
	},
	// Aggressive gains, fast sampling.
	"tight": {
		Dt: 0.01, Duration: 50.0, Setpoint: 1.0, Tau: 10.0,
		Controller: ControllerConfig{
			Kind: "pid", Kp: 4.0, Ki: 0.5, Kd: 0.1,
			IntegralLimit: DefaultLimit, OutputLimit: DefaultLimit,
		},
	},
	// Integral-heavy tuning that exercises the windup clamp.
	"windup": {
		Dt: 0.1, Duration: 200.0, Setpoint: 2.0, Tau: 10.0,
		Controller: ControllerConfig{
			Kind: "pid", Kp: 0.2, Ki: 2.0, Kd: 0.0,
			IntegralLimit: DefaultLimit, OutputLimit: DefaultLimit,
		},
	},
	// Uncontrolled baseline for comparison plots.
	"open-loop": {
		Dt: 0.1, Duration: 100.0, Setpoint: 1.0, Tau: 10.0,
		Controller: ControllerConfig{Kind: "none"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
