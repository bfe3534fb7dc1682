package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/swingsim/internal/export"
	"github.com/san-kum/swingsim/internal/physics"
)

const (
	defaultCols    = 72
	defaultRows    = 24
	panelWidth     = 44
	canvasPadX     = 2
	canvasPadY     = 1
	energyCapacity = 300
	trailLength    = 120
	grabSlack      = 4 // sub-pixels beyond the bob outline that still grab it
	snapshotScale  = 4
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Options struct {
	Dt          float64 // simulated seconds per tick at speed 1
	Title       string
	Theme       string
	SnapshotDir string
}

// Model hosts one pendulum in the terminal. Ticks, key presses and mouse
// events all arrive on the bubbletea update loop, so the pendulum is only
// ever touched from one goroutine.
type Model struct {
	pend   *physics.SpringPendulum
	status *StatusBoard
	trail  *Trail
	canvas *Canvas
	view   Viewport
	theme  Theme
	opts   Options

	running  bool
	gizmos   bool
	showHelp bool
	speed    float64
	t        float64
	energy   []float64
	tunables []string
	initial  map[string]float64
	selected int
	notice   string
}

func NewModel(p *physics.SpringPendulum, o Options) Model {
	if o.Dt <= 0 {
		o.Dt = 1.0 / 60.0
	}
	if o.Title == "" {
		o.Title = "spring pendulum"
	}

	status := NewStatusBoard()
	status.Sync(p.Params())
	p.SetNotifier(status)

	trail := NewTrail(trailLength)
	p.AddSink(trail)

	tunables := make([]string, 0)
	initial := make(map[string]float64)
	params := p.OrderedParams()
	for el := params.Front(); el != nil; el = el.Next() {
		if el.Key == physics.ParamRope {
			continue
		}
		tunables = append(tunables, el.Key)
		initial[el.Key] = el.Value
	}

	m := Model{
		pend:     p,
		status:   status,
		trail:    trail,
		canvas:   NewCanvas(defaultCols, defaultRows),
		theme:    GetTheme(o.Theme),
		opts:     o,
		running:  true,
		gizmos:   true,
		speed:    1,
		energy:   make([]float64, 0, energyCapacity),
		tunables: tunables,
		initial:  initial,
	}
	m.refit()
	status.Observe(p.Diagnostics())
	return m
}

// Run blocks until the user quits the live view.
func Run(p *physics.SpringPendulum, o Options) error {
	prog := tea.NewProgram(NewModel(p, o), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		cols := msg.Width - panelWidth - 2*canvasPadX - 3
		rows := msg.Height - 2*canvasPadY
		m.canvas = NewCanvas(max(cols, 20), max(rows, 10))
		m.refit()
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.pend.Initialize()
		m.restart()
	case "v":
		m.pend.ResetDynamics()
	case "tab":
		if len(m.tunables) > 0 {
			m.selected = (m.selected + 1) % len(m.tunables)
		}
	case "up", "k":
		m.adjust(1.05)
	case "down", "j":
		m.adjust(0.95)
	case "o":
		next := physics.Rope
		if m.pend.Params().Mode == physics.Rope {
			next = physics.Spring
		}
		if err := m.pend.SetMode(next); err != nil {
			m.notice = err.Error()
		}
	case "f":
		m.gizmos = !m.gizmos
	case "+", "=":
		m.speed = math.Min(m.speed*2, 8)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.125)
	case "t":
		m.theme = nextTheme(m.theme)
	case "s":
		m.snapshot()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasPadX, msg.Y-m.canvasTop()
	world := m.view.CellToWorld(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.overBob(col, row) {
			return
		}
		m.pend.BeginDrag()
		_ = m.pend.DragTo(world)
	case tea.MouseActionMotion:
		if m.pend.Dragging() {
			_ = m.pend.DragTo(world)
		}
	case tea.MouseActionRelease:
		if m.pend.Dragging() {
			m.pend.EndDrag()
		}
	}
}

// canvasTop is the terminal row of the first canvas cell.
func (m *Model) canvasTop() int {
	if m.showHelp {
		return helpRows + canvasPadY
	}
	return canvasPadY
}

// overBob reports whether the cell at (col, row) touches the bob.
func (m *Model) overBob(col, row int) bool {
	bx, by := m.view.ToScreen(m.pend.Position())
	dx, dy := col*2+1-bx, row*4+2-by
	reach := bobRadius(m.pend.Params().Mass) + grabSlack
	return dx*dx+dy*dy <= reach*reach
}

func (m *Model) step() {
	if m.running || m.pend.Dragging() {
		m.pend.Step(m.opts.Dt * m.speed)
		if !m.pend.Dragging() {
			m.t += m.opts.Dt * m.speed
		}
		m.energy = append(m.energy, m.pend.Energy())
		if len(m.energy) > energyCapacity {
			m.energy = m.energy[1:]
		}
	}
	m.status.Observe(m.pend.Diagnostics())
}

func (m *Model) adjust(factor float64) {
	if len(m.tunables) == 0 {
		return
	}
	key := m.tunables[m.selected]
	val, _ := m.pend.OrderedParams().Get(key)
	next := val * factor
	if val == 0 && factor > 1 {
		next = 0.1
	}
	if err := m.pend.SetParam(key, next); err != nil {
		m.notice = err.Error()
		return
	}
	if key == physics.ParamRestLength {
		m.refit()
	}
}

func (m *Model) restart() {
	m.t = 0
	m.trail.Reset()
	m.energy = m.energy[:0]
	m.status.Observe(m.pend.Diagnostics())
}

func (m *Model) refit() {
	m.view = FitViewport(m.canvas, m.pend.Params().RestLength)
}

func (m *Model) snapshot() {
	m.render()
	path := filepath.Join(m.opts.SnapshotDir, fmt.Sprintf("swingsim_%d.svg", time.Now().Unix()))
	if err := os.WriteFile(path, []byte(export.CanvasToSVG(m.canvas, snapshotScale)), 0644); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = "saved " + path
}

func (m *Model) render() {
	p := m.pend.Params()
	drawScene(m.canvas, m.view, m.pend.Diagnostics(), p.RestLength, p.Mass, m.trail.Points(), m.gizmos)
}

func (m Model) View() string {
	m.render()
	st := m.theme.panel(panelWidth)
	canvasView := st.canvas.Render(m.canvas.Render(m.theme.palette()))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.opts.Title)) + "\n")

	status := "RUNNING"
	switch {
	case m.pend.Dragging():
		status = "HOLDING"
	case !m.running:
		status = "PAUSED"
	}
	if m.speed != 1 {
		status += fmt.Sprintf(" x%g", m.speed)
	}
	s.WriteString(status + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(st.label.Render("Energy") + st.value.Render(fmt.Sprintf("%.3fJ", m.pend.Energy())) + "\n")
	s.WriteString(st.label.Render("Integrator") + st.value.Render(m.pend.Scheme().Name()) + "\n\n")

	for _, line := range m.status.Readouts() {
		s.WriteString(st.value.Render(line) + "\n")
	}
	s.WriteString("\n")
	for _, line := range m.status.Settings() {
		s.WriteString(st.value.Render(line) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for i, key := range m.tunables {
		s.WriteString(m.paramLine(st, i, key) + "\n")
	}

	if m.notice != "" {
		s.WriteString("\n" + st.warn.Render(m.notice) + "\n")
	}
	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Reset V:Still Q:Quit\nTab/↑↓:Tune O:Rope F:Forces\n+/-:Speed T:Theme S:Snapshot ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) paramLine(st panelStyles, i int, key string) string {
	val, _ := m.pend.OrderedParams().Get(key)
	initial := m.initial[key]
	if initial == 0 {
		initial = 1
	}

	const barWidth = 10
	ratio := math.Max(0, math.Min(1, val/(2*initial)))
	filled := int(ratio * barWidth)
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
	line := fmt.Sprintf("%-10s %s %.2f", key, bar, val)
	if i == m.selected {
		return st.active.Render("> " + line)
	}
	return "  " + st.label.Render(line)
}

// helpRows is how far the help overlay pushes the main view down.
var helpRows = strings.Count(helpText, "\n") + 1

const helpText = `
╔════════════════════════════════════════╗
║  Drag bob - Hold and move the bob      ║
║  Space    - Pause/Resume               ║
║  R        - Back to the initial angle  ║
║  V        - Zero the velocity          ║
║  Tab      - Cycle parameters           ║
║  Up/K     - Increase parameter (+5%)   ║
║  Down/J   - Decrease parameter (-5%)   ║
║  O        - Toggle rope / spring       ║
║  F        - Toggle force arrows        ║
║  +/-      - Simulation speed           ║
║  T        - Cycle themes               ║
║  S        - Save SVG snapshot          ║
║  Q        - Quit                       ║
╚════════════════════════════════════════╝`
