// Package sim drives free-streaming particle-mesh runs.
package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/metrics"
	"github.com/san-kum/vlasov/internal/parallel"
	"github.com/san-kum/vlasov/internal/particles"
	"github.com/san-kum/vlasov/internal/transport"
)

type Simulator struct {
	grid      *grid.Grid
	particles *particles.Set
	kernels   transport.Kernels
	metrics   []metrics.Metric
	observers []Observer
	logger    *slog.Logger
}

type Option func(*Simulator)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithStrategy selects how the transport kernels are executed. The
// default is sequential.
func WithStrategy(strategy parallel.Strategy) Option {
	return func(s *Simulator) {
		s.kernels = transport.New(strategy)
	}
}

// New returns a simulator that evolves p on g. The simulator takes
// ownership of p; Run mutates it in place.
func New(g *grid.Grid, p *particles.Set, opts ...Option) *Simulator {
	s := &Simulator{
		grid:      g,
		particles: p,
		kernels:   transport.New(parallel.Sequential),
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Grid() *grid.Grid          { return s.grid }
func (s *Simulator) Particles() *particles.Set { return s.particles }

// Run advances the particles cfg.Steps times. On cancellation it returns
// the steps completed so far together with an error matching both
// ErrCanceled and the context's error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	st := NewStepper(s.grid, s.particles, s.kernels, cfg.Dt, cfg.Acceleration)

	result := &Result{
		Snapshots: make([]Snapshot, 0, snapshotCount(cfg)),
		Metrics:   make(map[string]float64),
		Particles: s.particles.Len(),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Info("run started",
		"cells", s.grid.Cells(),
		"particles", s.particles.Len(),
		"steps", cfg.Steps,
		"dt", cfg.Dt,
		"workers", s.kernels.Strategy().Workers)

	finish := func() {
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
		result.Elapsed = time.Since(start)
	}

	s.observe(st, result, cfg)

	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			finish()
			s.logger.Warn("run canceled", "step", result.StepsTaken, "err", ctx.Err())
			return result, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		default:
		}

		st.Step()
		result.StepsTaken++

		if cfg.ValidateState && !finite(st.Density()) {
			s.snapshot(st, result)
			finish()
			return result, &StepError{Step: st.StepCount(), Time: st.Time(), Wrapped: ErrInvalidState}
		}

		s.observe(st, result, cfg)
	}

	finish()
	s.logger.Info("run finished",
		"steps", result.StepsTaken,
		"elapsed", result.Elapsed)
	return result, nil
}

func (s *Simulator) observe(st *Stepper, result *Result, cfg Config) {
	step, t := st.StepCount(), st.Time()
	p, rho := st.Particles(), st.Density()

	for _, m := range s.metrics {
		m.Observe(step, t, p, rho)
	}
	for _, obs := range s.observers {
		obs.OnStep(step, t, p, rho)
	}

	if step == 0 || step == cfg.Steps || (cfg.PrintEvery > 0 && step%cfg.PrintEvery == 0) {
		s.snapshot(st, result)
		s.logger.Debug("snapshot", "step", step, "time", t)
	}
}

func (s *Simulator) snapshot(st *Stepper, result *Result) {
	rho := st.Density()
	lo, hi := rho.MinMax()
	result.Snapshots = append(result.Snapshots, Snapshot{
		Step:    st.StepCount(),
		Time:    st.Time(),
		Density: append([]float64(nil), rho.Values()...),
		Min:     lo,
		Max:     hi,
	})
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.PrintEvery < 0 {
		return fmt.Errorf("%w: print interval must be non-negative, got %d", ErrInvalidConfig, cfg.PrintEvery)
	}
	if math.IsNaN(cfg.Acceleration) || math.IsInf(cfg.Acceleration, 0) {
		return fmt.Errorf("%w: acceleration must be finite, got %g", ErrInvalidConfig, cfg.Acceleration)
	}
	return nil
}

func snapshotCount(cfg Config) int {
	if cfg.PrintEvery <= 0 {
		return 2
	}
	return cfg.Steps/cfg.PrintEvery + 2
}

func finite(rho *grid.Field) bool {
	for _, v := range rho.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
