package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
	"github.com/san-kum/dopsim/internal/metrics"
)

// Experiment drives one integrator over an output grid of cfg.Samples
// equally spaced times ending at cfg.EndTime.
type Experiment struct {
	cfg     *config.Config
	logger  *slog.Logger
	dyn     dynamo.System
	integ   dynamo.Integrator
	x0      dynamo.TimeVector
	metrics []dynamo.Metric
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Experiment{cfg: cfg, logger: logger}
}

// Setup validates the configuration, builds the model and integrator, and
// attaches the default metrics.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	dyn, err := reg.GetModel(e.cfg.Model, e.cfg.Params)
	if err != nil {
		return err
	}
	integ, err := reg.GetIntegrator(e.cfg.Integrator, e.cfg.Solver)
	if err != nil {
		return err
	}

	x0 := dyn.DefaultState(e.cfg.Dim)
	if dyn.Dim() > 0 {
		if err := dynamo.CheckDim(x0, dyn.Dim()); err != nil {
			return err
		}
	}
	if err := dynamo.CheckDim(dyn.Derive(x0), x0.Dim()); err != nil {
		return fmt.Errorf("model %s: %w", e.cfg.Model, err)
	}

	e.dyn = dyn
	e.integ = integ
	e.x0 = x0
	e.metrics = reg.DefaultMetrics(dyn, x0)
	for _, m := range e.metrics {
		integ.AddObserver(m)
	}
	return nil
}

// AddObserver registers o with the integrator. Setup must run first.
func (e *Experiment) AddObserver(o dynamo.Observer) {
	e.integ.AddObserver(o)
}

func (e *Experiment) System() dynamo.System           { return e.dyn }
func (e *Experiment) Integrator() dynamo.Integrator   { return e.integ }
func (e *Experiment) InitialState() dynamo.TimeVector { return e.x0.Clone() }

// Run integrates from the initial state to EndTime. The context and the
// step budget are checked between output samples; a single segment always
// runs to completion.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.integ == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	samples := e.cfg.Samples
	result := &dynamo.Result{
		States:  make([]dynamo.TimeVector, 0, samples+1),
		Metrics: make(map[string]float64),
	}

	e.logger.Info("run started",
		"model", e.cfg.Model,
		"integrator", e.cfg.Integrator,
		"dim", e.x0.Dim(),
		"end_time", e.cfg.EndTime,
	)
	start := time.Now()

	x := e.x0.Clone()
	result.States = append(result.States, x)

	for i := 1; i <= samples; i++ {
		select {
		case <-ctx.Done():
			e.finish(result, start)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		x = e.integ.IntegrateTo(SampleTime(e.x0.Time, e.cfg.EndTime, i, samples), e.dyn.Derive, x)
		if !x.IsValid() {
			e.finish(result, start)
			return result, &dynamo.SimulationError{Step: e.integ.Steps(), Time: x.Time, State: x, Wrapped: dynamo.ErrInvalidState}
		}
		result.States = append(result.States, x)

		e.logger.Debug("segment done",
			"t", x.Time,
			"dt", e.integ.DeltaT(),
			"steps", e.integ.Steps(),
			"rejections", e.integ.Rejections(),
		)

		if e.cfg.MaxSteps > 0 && e.integ.Steps() > e.cfg.MaxSteps {
			e.finish(result, start)
			return result, &dynamo.SimulationError{Step: e.integ.Steps(), Time: x.Time, State: x, Wrapped: dynamo.ErrStepLimit}
		}
	}

	e.finish(result, start)
	e.logger.Info("run finished",
		"steps", result.Steps,
		"rejections", result.Rejections,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

func (e *Experiment) finish(result *dynamo.Result, start time.Time) {
	result.Steps = e.integ.Steps()
	result.Rejections = e.integ.Rejections()
	result.FinalDt = e.integ.DeltaT()
	result.Elapsed = time.Since(start)
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
		if b, ok := m.(*metrics.Bounded); ok {
			if at, escaped := b.Escape(); escaped {
				e.logger.Warn("state left bounds", "time", at)
			}
		}
	}
}

// SampleTime is the i-th of samples equally spaced output times after t0.
// The last one is exactly t0 + span so runs end on the requested time.
func SampleTime(t0, span float64, i, samples int) float64 {
	if i >= samples {
		return t0 + span
	}
	return t0 + span*float64(i)/float64(samples)
}
