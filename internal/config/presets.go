package config

import "sort"

var Presets = map[string]map[string]*Config{
	"exp": {
		"napier": {
			Model: "exp", Integrator: "dop54", Dim: 100, EndTime: 1.0, Samples: 10,
			Solver: SolverConfig{Dt: 0.1, MaxDt: 0.2, Tolerance: 1e-14, Growth: 1.003, Shrink: 1.0},
		},
		"long": {
			Model: "exp", Integrator: "dop54", Dim: 2, EndTime: 10.0, Samples: 200,
			Solver: SolverConfig{Dt: 1e-6, MaxDt: 0.2, Tolerance: 1e-12, Growth: 1.005, Shrink: 0.9},
		},
		"coarse": {
			Model: "exp", Integrator: "rk4", Dim: 1, EndTime: 1.0, Samples: 20,
			Solver: SolverConfig{Dt: 0.05, MaxDt: 0.05, Tolerance: 1e-6, Growth: 1.0, Shrink: 0.9},
		},
	},
	"decay": {
		"slow": {
			Model: "decay", Integrator: "dop54", Dim: 10, EndTime: 5.0, Samples: 100,
			Solver: SolverConfig{Dt: 1e-4, MaxDt: 0.1, Tolerance: 1e-12, Growth: 1.01, Shrink: 0.9},
			Params: ModelParams{Rate: 0.5},
		},
		"stiff": {
			Model: "decay", Integrator: "dop54", Dim: 4, EndTime: 1.0, Samples: 50,
			Solver: SolverConfig{Dt: 1e-3, MaxDt: 0.2, Tolerance: 1e-10, Growth: 1.05, Shrink: 0.5},
			Params: ModelParams{Rate: 50},
		},
	},
	"oscillator": {
		"unit": {
			Model: "oscillator", Integrator: "dop54", Dim: 2, EndTime: 6.283185307179586, Samples: 200,
			Solver: SolverConfig{Dt: 1e-3, MaxDt: 0.1, Tolerance: 1e-12, Growth: 1.005, Shrink: 0.9},
			Params: ModelParams{Omega: 1.0},
		},
		"fast": {
			Model: "oscillator", Integrator: "dop54", Dim: 6, EndTime: 10.0, Samples: 400,
			Solver: SolverConfig{Dt: 1e-4, MaxDt: 0.05, Tolerance: 1e-11, Growth: 1.005, Shrink: 0.9},
			Params: ModelParams{Omega: 8.0},
		},
	},
}

// GetPreset returns a copy of the named preset, with MaxSteps filled in, or
// nil when the model or preset is unknown.
func GetPreset(model, name string) *Config {
	models, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := models[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	return &cfg
}

func ListPresets(model string) []string {
	models, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
