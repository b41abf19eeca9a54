package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
	"github.com/san-kum/dopsim/internal/experiment"
	"github.com/san-kum/dopsim/internal/storage"
	"github.com/san-kum/dopsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	configFile string
	preset     string
	integrator string
	dt         float64
	dtMax      float64
	tol        float64
	growth     float64
	shrink     float64
	endTime    float64
	dim        int
	samples    int
	maxSteps   int
	rate       float64
	omega      float64

	trace      bool
	withStates bool
	maxPlots   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dopsim",
		Short:        "adaptive Dormand-Prince ODE integration lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = newLogger(os.Stderr, level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dopsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSolverFlags(runCmd)
	runCmd.Flags().BoolVar(&trace, "trace", false, "print time and x0 of every accepted step")

	checkCmd := &cobra.Command{
		Use:   "check [problem.yaml]",
		Short: "validate an N-body problem file",
		Args:  cobra.ExactArgs(1),
		RunE:  checkProblem,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&maxPlots, "max-plots", 6, "maximum number of components to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withStates, "states", false, "include the stored trajectory")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSolverFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a model with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolverFlags(liveCmd)

	rootCmd.AddCommand(runCmd, checkCmd, listCmd, plotCmd, exportCmd, presetsCmd, compareCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&integrator, "integrator", def.Integrator, "integrator")
	f.Float64Var(&dt, "dt", def.Solver.Dt, "initial step size")
	f.Float64Var(&dtMax, "dt-max", def.Solver.MaxDt, "maximum step size")
	f.Float64Var(&tol, "tol", def.Solver.Tolerance, "absolute error tolerance")
	f.Float64Var(&growth, "growth", def.Solver.Growth, "step growth factor on acceptance")
	f.Float64Var(&shrink, "shrink", def.Solver.Shrink, "step shrink factor on rejection")
	f.Float64Var(&endTime, "time", def.EndTime, "end time")
	f.IntVar(&dim, "dim", def.Dim, "state dimension")
	f.IntVar(&samples, "samples", def.Samples, "number of output samples")
	f.IntVar(&maxSteps, "max-steps", def.MaxSteps, "step budget, 0 for none")
	f.Float64Var(&rate, "rate", def.Params.Rate, "decay rate")
	f.Float64Var(&omega, "omega", def.Params.Omega, "oscillator angular frequency")
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(model, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Model = model

	f := cmd.Flags()
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("dt") {
		cfg.Solver.Dt = dt
	}
	if f.Changed("dt-max") {
		cfg.Solver.MaxDt = dtMax
	}
	if f.Changed("tol") {
		cfg.Solver.Tolerance = tol
	}
	if f.Changed("growth") {
		cfg.Solver.Growth = growth
	}
	if f.Changed("shrink") {
		cfg.Solver.Shrink = shrink
	}
	if f.Changed("time") {
		cfg.EndTime = endTime
	}
	if f.Changed("dim") {
		cfg.Dim = dim
	}
	if f.Changed("samples") {
		cfg.Samples = samples
	}
	if f.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if f.Changed("rate") {
		cfg.Params.Rate = rate
	}
	if f.Changed("omega") {
		cfg.Params.Omega = omega
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	if trace {
		exp.AddObserver(dynamo.ObserverFunc(func(x dynamo.TimeVector) {
			fmt.Fprintf(out, "%.14f %.14f\n", x.Time, firstComponent(x))
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	logger.Info("run stored", "id", runID, "dir", dataDir)

	printSummary(out, runID, cfg, result)
	return nil
}

func firstComponent(x dynamo.TimeVector) float64 {
	if x.Dim() == 0 {
		return math.NaN()
	}
	return x.Vec[0]
}

func printSummary(w io.Writer, runID string, cfg *config.Config, result *dynamo.Result) {
	label := viz.MetricLabel.Width(14)
	row := func(name, value string) {
		fmt.Fprintln(w, label.Render(name)+viz.MetricValue.Render(value))
	}

	fmt.Fprintln(w, viz.HeaderStyle.Render(cfg.Model+" / "+cfg.Integrator))
	row("run id", runID)
	row("elapsed", result.Elapsed.String())
	row("final time", fmt.Sprintf("%.14f", result.Final().Time))
	row("final x0", fmt.Sprintf("%.14f", firstComponent(result.Final())))
	row("steps", fmt.Sprintf("%d", result.Steps))
	row("rejections", fmt.Sprintf("%d", result.Rejections))
	row("final dt", fmt.Sprintf("%.6e", result.FinalDt))

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, viz.Separator(40))
	for _, name := range names {
		row(name, fmt.Sprintf("%.6e", result.Metrics[name]))
	}
}

func checkProblem(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	nb, err := config.LoadProblem(args[0])
	if err != nil {
		return err
	}
	if err := nb.Check(); err != nil {
		fmt.Fprintln(out, viz.StatusFailed.Render("INVALID ")+err.Error())
		return err
	}

	fmt.Fprintln(out, viz.HeaderStyle.Render(nb.SettingName))
	fmt.Fprintln(out, viz.StatusDone.Render("OK ")+fmt.Sprintf("%d bodies, total mass %g", nb.NumberOfBodies, nb.TotalMass()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tPOSITION")
	for i := range nb.Mass {
		fmt.Fprintf(w, "%d\t%g\t%v\n", i, nb.Mass[i], nb.Position[i])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tINTEG\tTIME\tEND\tDIM\tSTEPS\tREJ")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Integrator,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.EndTime,
			run.Dim,
			run.Steps,
			run.Rejections,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	out := cmd.OutOrStdout()

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	result := &dynamo.Result{States: states}
	times := result.Times()

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "model: %s (%s)\n", meta.Model, meta.Integrator)
	fmt.Fprintf(out, "samples: %d, t in [%g, %g]\n\n", len(states), times[0], times[len(times)-1])

	n := min(states[0].Dim(), maxPlots)
	for idx := 0; idx < n; idx++ {
		graph := asciigraph.Plot(result.Component(idx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d vs time", idx)),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

type exportState struct {
	Time float64   `json:"time"`
	X    []float64 `json:"x"`
}

type exportData struct {
	*storage.RunMetadata
	States []exportState `json:"states,omitempty"`
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data := exportData{RunMetadata: meta}
	if withStates {
		states, err := st.LoadStates(runID)
		if err != nil {
			return err
		}
		data.States = make([]exportState, len(states))
		for i, s := range states {
			data.States[i] = exportState{Time: s.Time, X: s.Vec}
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Fprintf(out, "no presets for model: %s\n", args[0])
		return nil
	}

	fmt.Fprintf(out, "presets for %s:\n", args[0])
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range presets {
		p := config.GetPreset(args[0], name)
		fmt.Fprintf(w, "  %s\t%s\tdim=%d\tend=%g\tdt=%g\ttol=%g\n",
			name, p.Integrator, p.Dim, p.EndTime, p.Solver.Dt, p.Solver.Tolerance)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	out := cmd.OutOrStdout()

	cfgs := make([]*config.Config, 0, len(args)-1)
	for _, name := range args[1:] {
		cfg, err := buildConfig(cmd, model)
		if err != nil {
			return err
		}
		cfg.Integrator = name
		cfgs = append(cfgs, cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes := experiment.RunEnsemble(ctx, experiment.NewRegistry(), logger, cfgs)

	fmt.Fprintf(out, "comparing integrators for %s\n\n", model)
	fmt.Fprintf(out, "%-10s  %-20s  %-12s  %-8s  %-8s  %-10s\n", "integrator", "final_x0", "error", "steps", "rejected", "time_ms")
	fmt.Fprintln(out, strings.Repeat("-", 78))

	for _, o := range outcomes {
		name := o.Config.Integrator
		if o.Err != nil {
			fmt.Fprintf(out, "%-10s  error: %v\n", name, o.Err)
			continue
		}

		final := o.Result.Final()
		globalErr := math.NaN()
		if a, ok := o.Exp.System().(dynamo.Analytic); ok {
			exact := a.Exact(o.Exp.InitialState(), final.Time)
			globalErr = floats.Distance(final.Vec, exact.Vec, 2)
		}

		fmt.Fprintf(out, "%-10s  %20.14f  %12.3e  %8d  %8d  %10.2f\n",
			name, firstComponent(final), globalErr, o.Result.Steps, o.Result.Rejections,
			float64(o.Result.Elapsed.Microseconds())/1000)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
