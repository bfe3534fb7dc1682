package viz

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/swingsim/internal/physics"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestViewportRoundTrip(t *testing.T) {
	v := FitViewport(NewCanvas(72, 24), 3)
	x, y := v.ToScreen([2]float64{-1.5, -2.5})
	back := v.ToWorld(x, y)
	if math.Abs(back[0]+1.5) > 1/v.Scale || math.Abs(back[1]+2.5) > 1/v.Scale {
		t.Errorf("round trip drifted: %v", back)
	}
	if px, py := v.ToScreen([2]float64{}); px != 72 || py != 48 {
		t.Errorf("pivot at (%d, %d), want centre", px, py)
	}
}

func TestTickAdvancesAndPauses(t *testing.T) {
	p := physics.NewSpringPendulum()
	m := NewModel(p, Options{})
	start := p.Position()

	m = send(t, m, TickMsg{})
	if p.Position() == start {
		t.Error("tick should move the bob")
	}
	if len(m.energy) != 1 {
		t.Errorf("expected one energy sample, got %d", len(m.energy))
	}

	m = send(t, m, key(" "))
	paused := p.Position()
	m = send(t, m, TickMsg{})
	if p.Position() != paused {
		t.Error("paused model should not step")
	}

	m = send(t, m, key("r"))
	if p.Position() != start || m.t != 0 || len(m.energy) != 0 {
		t.Error("r should restore the initial pose and clear history")
	}
}

func TestKeysTuneParameters(t *testing.T) {
	p := physics.NewSpringPendulum()
	m := NewModel(p, Options{})

	m = send(t, m, key("up"))
	if got := p.Params().RestLength; math.Abs(got-3.15) > 1e-12 {
		t.Errorf("length = %f, want 3.15", got)
	}
	if line, _ := m.status.Line(physics.ParamRestLength); line != "Length: 3.15m" {
		t.Errorf("status line = %q", line)
	}

	m = send(t, m, key("tab"))
	m = send(t, m, key("j"))
	if got := p.Params().Mass; math.Abs(got-0.95) > 1e-12 {
		t.Errorf("mass = %f, want 0.95", got)
	}

	m = send(t, m, key("o"))
	if p.Params().Mode != physics.Rope {
		t.Error("o should switch to rope")
	}
	send(t, m, key("o"))
	if p.Params().Mode != physics.Spring {
		t.Error("o should switch back to spring")
	}
}

func TestMouseDrag(t *testing.T) {
	p := physics.NewSpringPendulum()
	m := NewModel(p, Options{})
	m = send(t, m, TickMsg{})

	bx, by := m.view.ToScreen(p.Position())
	col, row := bx/2, by/4
	press := tea.MouseMsg{X: col + canvasPadX, Y: row + canvasPadY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = send(t, m, press)
	if !p.Dragging() {
		t.Fatal("press on the bob should start a drag")
	}

	motion := tea.MouseMsg{X: col + canvasPadX + 5, Y: row + canvasPadY, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	m = send(t, m, motion)
	want := m.view.CellToWorld(col+5, row)
	if p.Position() != want {
		t.Errorf("drag moved bob to %v, want %v", p.Position(), want)
	}

	m = send(t, m, TickMsg{})
	if p.Position() != want {
		t.Error("held bob must not integrate")
	}

	send(t, m, tea.MouseMsg{X: col + canvasPadX + 5, Y: row + canvasPadY, Action: tea.MouseActionRelease})
	if p.Dragging() {
		t.Error("release should end the drag")
	}
	if p.Velocity() != [2]float64{} {
		t.Errorf("release should zero the velocity, got %v", p.Velocity())
	}
}

func TestMouseMissesBob(t *testing.T) {
	p := physics.NewSpringPendulum()
	m := NewModel(p, Options{})
	send(t, m, tea.MouseMsg{X: canvasPadX, Y: canvasPadY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if p.Dragging() {
		t.Error("press far from the bob should not grab it")
	}
}

func TestMouseDragWithHelpShown(t *testing.T) {
	p := physics.NewSpringPendulum()
	m := NewModel(p, Options{})
	m = send(t, m, key("?"))

	lines := strings.Split(m.View(), "\n")
	if !strings.Contains(lines[helpRows-1], "╝") {
		t.Fatalf("help overlay should end on row %d, got %q", helpRows-1, lines[helpRows-1])
	}

	bx, by := m.view.ToScreen(p.Position())
	col, row := bx/2, by/4
	m = send(t, m, tea.MouseMsg{X: col + canvasPadX, Y: row + canvasPadY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if p.Dragging() {
		t.Fatal("press above the shifted canvas should not grab the bob")
	}

	y := row + canvasPadY + helpRows
	m = send(t, m, tea.MouseMsg{X: col + canvasPadX, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !p.Dragging() {
		t.Fatal("press on the shifted bob should start a drag")
	}
	if p.Position() != m.view.CellToWorld(col, row) {
		t.Errorf("drag placed bob at %v", p.Position())
	}
	send(t, m, tea.MouseMsg{X: col + canvasPadX, Y: y, Action: tea.MouseActionRelease})
}

func TestViewAndSnapshot(t *testing.T) {
	p := physics.NewSpringPendulum()
	dir := t.TempDir()
	m := NewModel(p, Options{Title: "test rig", SnapshotDir: dir})
	m = send(t, m, TickMsg{})
	m = send(t, m, TickMsg{})

	view := m.View()
	for _, want := range []string{"TEST RIG", "Coefficient: 20", "PARAMETERS", "symplectic"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(t, m, key("s"))
	if !strings.HasPrefix(m.notice, "saved ") {
		t.Fatalf("snapshot failed: %s", m.notice)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.svg"))
	if len(files) != 1 {
		t.Fatalf("expected one svg, got %v", files)
	}
	data, err := os.ReadFile(files[0])
	if err != nil || !strings.Contains(string(data), "<circle") {
		t.Error("snapshot should contain lit dots")
	}
}

func TestWindowResize(t *testing.T) {
	p := physics.NewSpringPendulum()
	m := NewModel(p, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	if m.canvas.Width != 160-panelWidth-2*canvasPadX-3 || m.canvas.Height != 48 {
		t.Errorf("canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
	m = send(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	if m.canvas.Width != 20 || m.canvas.Height != 10 {
		t.Errorf("canvas should clamp, got %dx%d", m.canvas.Width, m.canvas.Height)
	}
}
