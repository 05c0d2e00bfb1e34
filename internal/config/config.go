// Package config loads run configurations from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/loading"
	"github.com/san-kum/vlasov/internal/parallel"
	"github.com/san-kum/vlasov/internal/sim"
)

// ErrInvalidConfig indicates a configuration that fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	DefaultCells      = 64
	DefaultXMin       = 0.0
	DefaultDt         = 0.1
	DefaultSteps      = 100
	DefaultPrintEvery = 10
)

// DefaultXMax spans one wavelength of the default k = 1 perturbation.
var DefaultXMax = 2 * math.Pi

type Config struct {
	Grid         GridConfig      `yaml:"grid"`
	Time         TimeConfig      `yaml:"time"`
	Loading      loading.Params  `yaml:"loading"`
	Acceleration float64         `yaml:"acceleration"`
	Execution    ExecutionConfig `yaml:"execution"`
}

type GridConfig struct {
	Cells int     `yaml:"cells"`
	XMin  float64 `yaml:"x_min"`
	XMax  float64 `yaml:"x_max"`
}

type TimeConfig struct {
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	PrintEvery int     `yaml:"print_every"`
}

// ExecutionConfig selects the kernel strategy. Workers of 0 means one per
// CPU; 1 runs sequentially.
type ExecutionConfig struct {
	Workers  int `yaml:"workers"`
	MinChunk int `yaml:"min_chunk"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Cells: DefaultCells,
			XMin:  DefaultXMin,
			XMax:  DefaultXMax,
		},
		Time: TimeConfig{
			Dt:         DefaultDt,
			Steps:      DefaultSteps,
			PrintEvery: DefaultPrintEvery,
		},
		Loading: loading.DefaultParams(),
		Execution: ExecutionConfig{
			Workers:  1,
			MinChunk: parallel.DefaultMinChunk,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
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

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every section. Errors wrap ErrInvalidConfig and, where
// a lower layer rejected the value, that layer's error too.
func (c *Config) Validate() error {
	if _, err := c.NewGrid(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Loading.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !(c.Time.Dt > 0) || math.IsInf(c.Time.Dt, 0) {
		return fmt.Errorf("%w: time.dt must be positive, got %g", ErrInvalidConfig, c.Time.Dt)
	}
	if c.Time.Steps < 0 {
		return fmt.Errorf("%w: time.steps must be non-negative, got %d", ErrInvalidConfig, c.Time.Steps)
	}
	if c.Time.PrintEvery < 0 {
		return fmt.Errorf("%w: time.print_every must be non-negative, got %d", ErrInvalidConfig, c.Time.PrintEvery)
	}
	if math.IsNaN(c.Acceleration) || math.IsInf(c.Acceleration, 0) {
		return fmt.Errorf("%w: acceleration must be finite, got %g", ErrInvalidConfig, c.Acceleration)
	}
	if c.Execution.Workers < 0 {
		return fmt.Errorf("%w: execution.workers must be non-negative, got %d", ErrInvalidConfig, c.Execution.Workers)
	}
	if c.Execution.MinChunk < 0 {
		return fmt.Errorf("%w: execution.min_chunk must be non-negative, got %d", ErrInvalidConfig, c.Execution.MinChunk)
	}
	return nil
}

// NewGrid builds the configured mesh. Errors wrap grid.ErrInvalidArgument.
func (c *Config) NewGrid() (*grid.Grid, error) {
	return grid.New(c.Grid.Cells, c.Grid.XMin, c.Grid.XMax)
}

func (c *Config) Strategy() parallel.Strategy {
	if c.Execution.Workers == 0 {
		s := parallel.Auto()
		if c.Execution.MinChunk > 0 {
			s.MinChunk = c.Execution.MinChunk
		}
		return s
	}
	return parallel.Chunked(c.Execution.Workers, c.Execution.MinChunk)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Time.Dt,
		Steps:         c.Time.Steps,
		PrintEvery:    c.Time.PrintEvery,
		Acceleration:  c.Acceleration,
		ValidateState: true,
	}
}
