package viz

import (
	"math"
	"testing"

	"github.com/san-kum/swingsim/internal/physics"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{physics.ParamRestLength, 3, "Length: 3.00m"},
		{physics.ParamMass, 1.234, "Mass: 1.23kg"},
		{physics.ParamStiffness, 20, "Coefficient: 20"},
		{physics.ParamStiffness, 12.5, "Coefficient: 12.5"},
		{physics.ParamGravity, 9.81, "Gravity: 9.81m/s²"},
	}
	for _, tt := range tests {
		if got := FormatParam(tt.name, tt.value); got != tt.want {
			t.Errorf("FormatParam(%s, %v) = %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}
	if got := FormatAngle(math.Pi / 6); got != "Angle: 30.00°" {
		t.Errorf("FormatAngle = %q", got)
	}
}

func TestStatusBoardTracksPendulum(t *testing.T) {
	p := physics.NewSpringPendulum()
	board := NewStatusBoard()
	board.Sync(p.Params())
	p.SetNotifier(board)

	if err := p.SetRestLength(2.5); err != nil {
		t.Fatal(err)
	}
	if err := p.SetMode(physics.Rope); err != nil {
		t.Fatal(err)
	}
	_ = p.SetMass(-1)

	want := []string{"Length: 2.50m", "Mass: 1.00kg", "Coefficient: 20", "Gravity: 9.81m/s²", "Mode: rope"}
	got := board.Settings()
	if len(got) != len(want) {
		t.Fatalf("settings = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}

	board.Observe(p.Diagnostics())
	if line, ok := board.Line("angle"); !ok || line != "Angle: -30.00°" {
		t.Errorf("angle readout = %q", line)
	}
	if line, ok := board.Line("radius"); !ok || line != "Length: 3.00m" {
		t.Errorf("radius readout = %q", line)
	}
}

func TestGizmos(t *testing.T) {
	d := physics.Diagnostics{
		GravityForce:     9.81,
		GravityDirection: physics.GravityDirection,
		TensionForce:     50,
		Velocity:         [2]float64{2, 0},
	}
	d.TensionDirection[1] = 1

	g := Gizmos(d)
	if len(g) != 4 {
		t.Fatalf("expected 4 arrows, got %d", len(g))
	}
	if g[0].To[0] != 1 {
		t.Errorf("velocity arrow should be half the velocity, got %v", g[0].To)
	}
	if math.Abs(g[1].To[1]+4.905) > 1e-12 {
		t.Errorf("gravity arrow = %v", g[1].To)
	}
	if g[2].To[1] != 2 {
		t.Errorf("tension arrow should clamp at 10 N, got %v", g[2].To)
	}
	if math.Abs(g[3].To[1]-(2-4.905)) > 1e-12 {
		t.Errorf("resultant arrow = %v", g[3].To)
	}

	d.Dragging = true
	if Gizmos(d) != nil {
		t.Error("no arrows while dragging")
	}
}

func TestTrailLimit(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Publish([2]float64{float64(i), 0})
	}
	pts := tr.Points()
	if len(pts) != 3 || pts[0][0] != 2 || pts[2][0] != 4 {
		t.Errorf("unexpected trail %v", pts)
	}
	tr.Reset()
	if len(tr.Points()) != 0 {
		t.Error("expected empty trail")
	}
}
