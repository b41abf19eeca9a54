package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dopsim/internal/dynamo"
)

const (
	DefaultDt        = 1e-6
	DefaultMaxDt     = 0.2
	DefaultTolerance = 1e-12
	DefaultGrowth    = 1.005
	DefaultShrink    = 0.9
	DefaultEndTime   = 1.0
	DefaultDim       = 2
	DefaultSamples   = 100
	DefaultMaxSteps  = 1_000_000
)

type Config struct {
	Model      string       `yaml:"model"`
	Integrator string       `yaml:"integrator"`
	Dim        int          `yaml:"dim"`
	EndTime    float64      `yaml:"end_time"`
	Samples    int          `yaml:"samples"`
	MaxSteps   int          `yaml:"max_steps"`
	Solver     SolverConfig `yaml:"solver"`
	Params     ModelParams  `yaml:"params"`
}

// SolverConfig carries the step-size control settings of the adaptive
// integrator. Fixed-step integrators only use Dt.
type SolverConfig struct {
	Dt        float64 `yaml:"dt" json:"dt"`
	MaxDt     float64 `yaml:"dt_max" json:"dt_max"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	Growth    float64 `yaml:"growth" json:"growth"`
	Shrink    float64 `yaml:"shrink" json:"shrink"`
}

type ModelParams struct {
	Rate  float64 `yaml:"rate"`
	Omega float64 `yaml:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "exp",
		Integrator: "dop54",
		Dim:        DefaultDim,
		EndTime:    DefaultEndTime,
		Samples:    DefaultSamples,
		MaxSteps:   DefaultMaxSteps,
		Solver:     DefaultSolver(),
		Params: ModelParams{
			Rate:  1.0,
			Omega: 1.0,
		},
	}
}

func DefaultSolver() SolverConfig {
	return SolverConfig{
		Dt:        DefaultDt,
		MaxDt:     DefaultMaxDt,
		Tolerance: DefaultTolerance,
		Growth:    DefaultGrowth,
		Shrink:    DefaultShrink,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks the settings the integrators rely on: positive step
// sizes and tolerance, growth at least 1 and shrink in (0, 1]. The
// oscillator also needs a positive angular frequency.
func (c *Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	if c.EndTime <= 0 {
		return fmt.Errorf("%w: end_time must be positive, got %g", dynamo.ErrParameterBounds, c.EndTime)
	}
	if c.Dim < 0 {
		return fmt.Errorf("%w: dim must not be negative, got %d", dynamo.ErrParameterBounds, c.Dim)
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", dynamo.ErrParameterBounds, c.Samples)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative, got %d", dynamo.ErrParameterBounds, c.MaxSteps)
	}
	if c.Model == "oscillator" && !(c.Params.Omega > 0) {
		return fmt.Errorf("%w: omega must be positive, got %g", dynamo.ErrParameterBounds, c.Params.Omega)
	}
	return nil
}

func (s SolverConfig) Validate() error {
	switch {
	case s.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, s.Dt)
	case s.MaxDt <= 0:
		return fmt.Errorf("%w: dt_max must be positive, got %g", dynamo.ErrParameterBounds, s.MaxDt)
	case s.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive, got %g", dynamo.ErrParameterBounds, s.Tolerance)
	case s.Growth < 1:
		return fmt.Errorf("%w: growth must be at least 1, got %g", dynamo.ErrParameterBounds, s.Growth)
	case s.Shrink <= 0 || s.Shrink > 1:
		return fmt.Errorf("%w: shrink must be in (0, 1], got %g", dynamo.ErrParameterBounds, s.Shrink)
	}
	return nil
}
