package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vlasov/internal/metrics"
	"github.com/san-kum/vlasov/internal/sim"
)

const (
	frameRate       = time.Second / 30
	graphWidth      = 60
	graphHeight     = 12
	phaseCols       = 60
	phaseRows       = 12
	historyCapacity = 300
	maxStepsPerTick = 64
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a run on every frame and renders its density and phase
// space.
type Model struct {
	stepper      *sim.Stepper
	name         string
	running      bool
	stepsPerTick int
	showPhase    bool
	palette      Palette
	styles       styles
	canvas       *PhaseCanvas
	vMax         float64

	diagnostics   []metrics.Metric
	charge        *metrics.Charge
	energy        *metrics.KineticEnergy
	rhoRange      *metrics.DensityRange
	energyHistory []float64
}

// NewModel wraps st. The stepper should be freshly constructed so its
// current state is the initial condition that R rewinds to.
func NewModel(st *sim.Stepper, name string) Model {
	m := Model{
		stepper:       st,
		name:          name,
		running:       true,
		stepsPerTick:  1,
		showPhase:     true,
		palette:       PalettePlasma,
		styles:        newStyles(PalettePlasma),
		canvas:        NewPhaseCanvas(phaseCols, phaseRows),
		vMax:          velocityBound(st),
		charge:        metrics.NewCharge(),
		energy:        metrics.NewKineticEnergy(),
		rhoRange:      metrics.NewDensityRange(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.diagnostics = []metrics.Metric{m.charge, m.energy, m.rhoRange}
	m.observe()
	return m
}

func velocityBound(st *sim.Stepper) float64 {
	vMax := 0.0
	for _, v := range st.Particles().V() {
		vMax = math.Max(vMax, math.Abs(v))
	}
	if vMax == 0 {
		return 1
	}
	return vMax * 1.05
}

// WithPalette returns a copy of m drawing with the named palette.
func (m Model) WithPalette(name string) Model {
	m.palette = GetPalette(name)
	m.styles = newStyles(m.palette)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Running() bool      { return m.running }
func (m Model) StepsPerTick() int  { return m.stepsPerTick }
func (m Model) Palette() Palette   { return m.palette }
func (m Model) PhaseVisible() bool { return m.showPhase }

// Update handles key presses and advances the run on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "p":
			m.showPhase = !m.showPhase
		case "t":
			m.palette = nextPalette(m.palette)
			m.styles = newStyles(m.palette)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		m.stepper.Step()
	}
	m.observe()
}

func (m *Model) observe() {
	st := m.stepper
	for _, d := range m.diagnostics {
		d.Observe(st.StepCount(), st.Time(), st.Particles(), st.Density())
	}
	m.energyHistory = append(m.energyHistory, m.energy.Value())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.stepper.Reset()
	for _, d := range m.diagnostics {
		d.Reset()
	}
	m.energyHistory = m.energyHistory[:0]
	m.observe()
}

// View renders the density panel, the optional phase-space panel and the
// statistics column.
func (m Model) View() string {
	st := m.stepper
	g := st.Grid()

	var left strings.Builder
	left.WriteString(m.styles.title.Render(strings.ToUpper(m.name)) + "\n")
	left.WriteString(m.styles.graph.Render(DensityPlot(st.Density().Values(), graphWidth, graphHeight, "density")))
	if m.showPhase {
		m.canvas.Plot(st.Particles().X(), st.Particles().V(), g.XMin(), g.XMax(), m.vMax)
		left.WriteString("\n" + m.styles.phase.Render(m.canvas.String()))
		left.WriteString("\n" + m.styles.value.Render(fmt.Sprintf("x vs v, |v| <= %.2f", m.vMax)))
	}

	status := m.styles.running.Render("RUNNING")
	if !m.running {
		status = m.styles.paused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(status + "\n\n")
	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d", st.StepCount()))
	row("Time", fmt.Sprintf("%.2f", st.Time()))
	row("Particles", fmt.Sprintf("%d", st.Particles().Len()))
	row("Cells", fmt.Sprintf("%d", g.Cells()))
	row("Steps/frame", fmt.Sprintf("%d", m.stepsPerTick))
	row("Workers", fmt.Sprintf("%d", max(st.Kernels().Strategy().Workers, 1)))
	row("rho min", fmt.Sprintf("%.4f", m.rhoRange.Min()))
	row("rho max", fmt.Sprintf("%.4f", m.rhoRange.Max()))
	row("Charge drift", fmt.Sprintf("%.2e", m.charge.Value()))
	row("Kinetic", fmt.Sprintf("%.4f", m.energy.Value()))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString("\n" + m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.help.Render("SP:Pause R:Reset Q:Quit\n+/-:Speed P:Phase T:Palette"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.panel.Render(left.String()),
		m.styles.panel.Render(s.String()))
}

// DensityPlot renders one density profile as an ASCII line graph. It
// returns the empty string for an empty profile.
func DensityPlot(density []float64, width, height int, caption string) string {
	if len(density) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(density, opts...)
}
