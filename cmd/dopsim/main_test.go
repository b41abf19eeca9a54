package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/storage"
)

func newSolverCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addSolverFlags(cmd)
	cmd.Flags().BoolVar(&trace, "trace", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestBuildConfigFileThenFlags(t *testing.T) {
	cmd := newSolverCmd(t, "--config", "testdata/decay.yaml", "--tol", "1e-9")

	cfg, err := buildConfig(cmd, "decay")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dim)
	assert.Equal(t, 2.0, cfg.EndTime)
	assert.Equal(t, 2.0, cfg.Params.Rate)
	assert.Equal(t, 0.001, cfg.Solver.Dt)
	assert.Equal(t, 1e-9, cfg.Solver.Tolerance)
}

func TestBuildConfigPreset(t *testing.T) {
	cmd := newSolverCmd(t, "--preset", "napier", "--dim", "4")

	cfg, err := buildConfig(cmd, "exp")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Dim)
	assert.Equal(t, 1e-14, cfg.Solver.Tolerance)
	assert.Equal(t, 1.003, cfg.Solver.Growth)

	cmd = newSolverCmd(t, "--preset", "nope")
	_, err = buildConfig(cmd, "exp")
	assert.Error(t, err)
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(newSolverCmd(t), "oscillator")
	require.NoError(t, err)

	want := config.DefaultConfig()
	want.Model = "oscillator"
	assert.Equal(t, want, cfg)
}

func TestCheckProblem(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, checkProblem(cmd, []string{"testdata/three_body.yaml"}))
	assert.Contains(t, buf.String(), "figure eight")
	assert.Contains(t, buf.String(), "3 bodies")

	err := checkProblem(cmd, []string{"testdata/broken.yaml"})
	assert.True(t, errors.Is(err, config.ErrMassCount))
}

func TestRunSimulationTraceAndStore(t *testing.T) {
	dataDir = t.TempDir()
	logger = newLogger(io.Discard, slog.LevelInfo)

	var buf bytes.Buffer
	cmd := newSolverCmd(t, "--dim", "1", "--samples", "2", "--dt", "0.01", "--trace")
	cmd.SetOut(&buf)

	require.NoError(t, runSimulation(cmd, []string{"exp"}))

	var traced []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Count(line, " ") == 1 && strings.Count(line, ".") == 2 {
			traced = append(traced, line)
		}
	}
	require.NotEmpty(t, traced)
	assert.True(t, strings.HasPrefix(traced[len(traced)-1], "1.00000000000000 2.718281828"), traced[len(traced)-1])

	runs, err := storage.New(dataDir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "exp", runs[0].Model)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := parseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseLevel("loud")
	assert.Error(t, err)
}
