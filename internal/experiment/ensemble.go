package experiment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
)

// Outcome is the result of one member of an ensemble.
type Outcome struct {
	Config *config.Config
	Exp    *Experiment
	Result *dynamo.Result
	Err    error
}

// RunEnsemble sets up and runs one experiment per configuration
// concurrently. Each member owns its integrator. Outcomes keep the order of
// cfgs; a failing member does not stop the others.
func RunEnsemble(ctx context.Context, reg *Registry, logger *slog.Logger, cfgs []*config.Config) []Outcome {
	outcomes := make([]Outcome, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()

			out := Outcome{Config: cfg, Exp: New(cfg, logger)}
			if out.Err = out.Exp.Setup(reg); out.Err == nil {
				out.Result, out.Err = out.Exp.Run(ctx)
			}
			outcomes[idx] = out
		}(i, cfg)
	}

	wg.Wait()
	return outcomes
}
