package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
	"github.com/san-kum/dopsim/internal/experiment"
)

const (
	historyCapacity = 600
	frameRate       = 30
)

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle = MetricLabel.Width(12)
)

type TickMsg time.Time

// Model plays an experiment back one output sample per frame.
type Model struct {
	cfg *config.Config
	reg *experiment.Registry
	exp *experiment.Experiment

	x        dynamo.TimeVector
	t0       float64
	sample   int
	running  bool
	err      error
	values   []float64
	stepLens []float64
}

// NewModel builds the experiment described by cfg. Reset rebuilds it from
// scratch so counters start at zero again.
func NewModel(cfg *config.Config, reg *experiment.Registry) (Model, error) {
	m := Model{cfg: cfg, reg: reg}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// Done reports whether the last output sample has been reached.
func (m Model) Done() bool {
	return m.sample >= m.cfg.Samples || m.err != nil
}

func (m Model) State() dynamo.TimeVector { return m.x }

func (m *Model) reset() error {
	exp := experiment.New(m.cfg, nil)
	if err := exp.Setup(m.reg); err != nil {
		return err
	}
	m.exp = exp
	m.x = exp.InitialState()
	m.t0 = m.x.Time
	m.sample = 0
	m.running = true
	m.err = nil
	m.values = m.values[:0]
	m.stepLens = m.stepLens[:0]
	m.record()
	return nil
}

// step advances to the next output sample.
func (m *Model) step() {
	m.sample++
	target := experiment.SampleTime(m.t0, m.cfg.EndTime, m.sample, m.cfg.Samples)

	integ := m.exp.Integrator()
	m.x = integ.IntegrateTo(target, m.exp.System().Derive, m.x)
	if !m.x.IsValid() {
		m.err = &dynamo.SimulationError{Step: integ.Steps(), Time: m.x.Time, State: m.x, Wrapped: dynamo.ErrInvalidState}
		m.running = false
		return
	}
	m.record()
}

func (m *Model) record() {
	v := 0.0
	if m.x.Dim() > 0 {
		v = m.x.Vec[0]
	}
	m.values = appendCapped(m.values, v)
	m.stepLens = appendCapped(m.stepLens, m.exp.Integrator().DeltaT())
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m Model) View() string {
	integ := m.exp.Integrator()

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.cfg.Model)+" / "+m.cfg.Integrator) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusFailed.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.Done():
		s.WriteString(StatusDone.Render("DONE") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.values) > 1 {
		chart := asciigraph.Plot(m.values, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption("x0"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("progress") + ProgressBar(m.x.Time/m.cfg.EndTime, 30) + "\n")
	s.WriteString(labelStyle.Render("dt") + SparklineChart(m.stepLens, 30) + "\n\n")

	rows := [][2]string{
		{"time", fmt.Sprintf("%.6f", m.x.Time)},
		{"dt", fmt.Sprintf("%.3e", integ.DeltaT())},
		{"steps", fmt.Sprintf("%d", integ.Steps())},
		{"rejections", fmt.Sprintf("%d", integ.Rejections())},
		{"|x|", fmt.Sprintf("%.6e", m.x.Norm())},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + MetricValue.Render(r[1]) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("space: pause  r: reset  q: quit"))
	return panelStyle.Render(s.String())
}
