package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.1
	DefaultDuration = 100.0
	DefaultSetpoint = 1.0
	DefaultTau      = 10.0
	DefaultKp       = 1.0
	DefaultKi       = 0.0
	DefaultKd       = 0.02
	DefaultLimit    = 5.0
)

type Config struct {
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	Setpoint   float64          `yaml:"setpoint"`
	Tau        float64          `yaml:"tau"`
	Controller ControllerConfig `yaml:"controller"`
}

type ControllerConfig struct {
	Kind          string  `yaml:"kind"`
	Kp            float64 `yaml:"kp"`
	Ki            float64 `yaml:"ki"`
	Kd            float64 `yaml:"kd"`
	IntegralLimit float64 `yaml:"integral_limit"`
	OutputLimit   float64 `yaml:"output_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Setpoint: DefaultSetpoint,
		Tau:      DefaultTau,
		Controller: ControllerConfig{
			Kind:          "pid",
			Kp:            DefaultKp,
			Ki:            DefaultKi,
			Kd:            DefaultKd,
			IntegralLimit: DefaultLimit,
			OutputLimit:   DefaultLimit,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
