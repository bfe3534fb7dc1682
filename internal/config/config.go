package config

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/swingsim/internal/dynamo"
	"github.com/san-kum/swingsim/internal/integrators"
	"github.com/san-kum/swingsim/internal/physics"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 10.0
	DefaultAngleDeg = 30.0
	DefaultLogLevel = "info"
)

type Config struct {
	Pendulum   PendulumConfig `yaml:"pendulum"`
	Integrator string         `yaml:"integrator"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	LogLevel   string         `yaml:"log_level"`
}

type PendulumConfig struct {
	Mass            float64      `yaml:"mass"`
	RestLength      float64      `yaml:"rest_length"`
	Stiffness       float64      `yaml:"stiffness"`
	Mode            physics.Mode `yaml:"mode"`
	InitialAngleDeg float64      `yaml:"initial_angle_deg"`
	Gravity         float64      `yaml:"gravity"`
}

func DefaultConfig() *Config {
	return &Config{
		Pendulum: PendulumConfig{
			Mass:            physics.DefaultMass,
			RestLength:      physics.DefaultRestLength,
			Stiffness:       physics.DefaultStiffness,
			Mode:            physics.Spring,
			InitialAngleDeg: DefaultAngleDeg,
			Gravity:         physics.DefaultGravity,
		},
		Integrator: integrators.Default,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads a yaml file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Fields absent from the file keep the
// base values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cp := *base
	cfg := &cp
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Parameters converts the pendulum section to physics parameters.
func (c *Config) Parameters() physics.Parameters {
	return physics.Parameters{
		Mass:         c.Pendulum.Mass,
		RestLength:   c.Pendulum.RestLength,
		Stiffness:    c.Pendulum.Stiffness,
		Mode:         c.Pendulum.Mode,
		InitialAngle: c.Pendulum.InitialAngleDeg * math.Pi / 180,
		Gravity:      c.Pendulum.Gravity,
	}
}

// SimConfig is the runner configuration for headless runs.
func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{Dt: c.Dt, Duration: c.Duration, ValidateState: true}
}

func (c *Config) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}
