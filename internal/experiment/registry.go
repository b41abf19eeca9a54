package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
	"github.com/san-kum/dopsim/internal/integrators"
	"github.com/san-kum/dopsim/internal/metrics"
	"github.com/san-kum/dopsim/internal/models"
)

type (
	ModelFactory      func(p config.ModelParams) dynamo.System
	IntegratorFactory func(s config.SolverConfig) dynamo.Integrator
)

type Registry struct {
	models      map[string]ModelFactory
	integrators map[string]IntegratorFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]ModelFactory),
		integrators: make(map[string]IntegratorFactory),
	}

	r.RegisterModel("exp", func(config.ModelParams) dynamo.System { return models.NewExponential() })
	r.RegisterModel("decay", func(p config.ModelParams) dynamo.System { return models.NewDecay(p.Rate) })
	r.RegisterModel("oscillator", func(p config.ModelParams) dynamo.System { return models.NewOscillator(p.Omega) })

	r.RegisterIntegrator("dop54", func(s config.SolverConfig) dynamo.Integrator {
		return integrators.NewDOP54(s.Dt, s.MaxDt, s.Tolerance, s.Growth, s.Shrink)
	})
	r.RegisterIntegrator("rk4", func(s config.SolverConfig) dynamo.Integrator { return integrators.NewRK4(s.Dt) })
	r.RegisterIntegrator("euler", func(s config.SolverConfig) dynamo.Integrator { return integrators.NewEuler(s.Dt) })

	return r
}

func (r *Registry) RegisterModel(name string, fn ModelFactory) {
	r.models[name] = fn
}

func (r *Registry) RegisterIntegrator(name string, fn IntegratorFactory) {
	r.integrators[name] = fn
}

func (r *Registry) GetModel(name string, params config.ModelParams) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownModel, name, r.ListModels())
	}
	return fn(params), nil
}

func (r *Registry) GetIntegrator(name string, solver config.SolverConfig) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, r.ListIntegrators())
	}
	return fn(solver), nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

// DefaultMetrics returns the metrics recorded for every run of dyn from x0.
func (r *Registry) DefaultMetrics(dyn dynamo.System, x0 dynamo.TimeVector) []dynamo.Metric {
	list := []dynamo.Metric{
		metrics.NewGrowth(x0),
		metrics.NewBounded(1e12),
		metrics.NewStepSize(x0.Time),
	}
	if a, ok := dyn.(dynamo.Analytic); ok {
		list = append(list, metrics.NewGlobalError(a, x0))
	}
	if _, ok := dyn.(dynamo.Hamiltonian); ok {
		list = append(list, metrics.NewEnergyDrift(dyn))
	}
	return list
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
