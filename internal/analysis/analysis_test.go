package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/swingsim/internal/dynamo"
	"github.com/san-kum/swingsim/internal/physics"
)

func sine(n int, dt, period float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 2 + math.Sin(2*math.Pi*float64(i)*dt/period)
	}
	return out
}

func TestDominantPeriod_ExactBin(t *testing.T) {
	dt := 0.01
	got, err := DominantPeriod(sine(256, dt, 0.32), dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.32) > 0.0032 {
		t.Errorf("expected period 0.32, got %f", got)
	}
}

func TestDominantPeriod_Padded(t *testing.T) {
	dt := 0.01
	got, err := DominantPeriod(sine(300, dt, 1.0), dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1.0) > 0.05 {
		t.Errorf("expected period near 1.0, got %f", got)
	}
}

func TestDominantPeriod_Errors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantPeriod(make([]float64, 16), 0.1); err == nil {
		t.Error("expected error for a flat series")
	}
	if _, err := DominantPeriod(sine(16, 0.1, 1), 0); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestFFTLength(t *testing.T) {
	if got := len(FFT(make([]float64, 100))); got != 128 {
		t.Errorf("expected padding to 128, got %d", got)
	}
	if got := len(PowerSpectrum(make([]float64, 64))); got != 32 {
		t.Errorf("expected 32 bins, got %d", got)
	}
}

func TestSmallAnglePeriod(t *testing.T) {
	if got := SmallAnglePeriod(9.81, 9.81); math.Abs(got-2*math.Pi) > 1e-12 {
		t.Errorf("expected 2π, got %f", got)
	}
	if !math.IsInf(SmallAnglePeriod(3, 0), 1) {
		t.Error("expected +Inf without gravity")
	}
}

func stiffPendulum(t *testing.T) *physics.SpringPendulum {
	t.Helper()
	params := physics.DefaultParameters()
	params.Stiffness = 2000
	params.InitialAngle = 10 * math.Pi / 180
	p, err := physics.NewWithParams(params)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestStiffPendulumMatchesRigidPeriod(t *testing.T) {
	p := stiffPendulum(t)
	cfg := dynamo.Config{Dt: 1.0 / 600.0, Duration: 40}
	result, err := dynamo.New().Run(context.Background(), p, cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := SmallAnglePeriod(physics.DefaultRestLength, physics.DefaultGravity)

	xs, _ := result.Column(physics.LabelX)
	spectral, err := DominantPeriod(xs, cfg.Dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(spectral-want)/want > 0.05 {
		t.Errorf("spectral period %f, want about %f", spectral, want)
	}

	turns, err := TurningPoints(result, physics.LabelX)
	if err != nil {
		t.Fatal(err)
	}
	measured, err := MeanInterval(turns)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(measured-want)/want > 0.02 {
		t.Errorf("turning point period %f, want about %f", measured, want)
	}
}

func TestPhasePortrait(t *testing.T) {
	r := &dynamo.Result{Labels: []string{"a", "b"}}
	for i := 0; i < 100; i++ {
		th := 2 * math.Pi * float64(i) / 100
		r.States = append(r.States, dynamo.State{math.Cos(th), math.Sin(th)})
		r.Times = append(r.Times, float64(i))
	}

	portrait, err := PhasePortrait(r, "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if len(portrait.Points) != 100 {
		t.Errorf("expected 100 points, got %d", len(portrait.Points))
	}
	if art := portrait.ToASCII(40, 20); art == "" {
		t.Error("expected ascii output")
	}
	if _, err := PhasePortrait(r, "a", "missing"); err == nil {
		t.Error("expected error for unknown label")
	}

	turns, err := TurningPoints(r, "b")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 0 {
		t.Errorf("sin over one period never crosses upward after start, got %v", turns)
	}
}

func TestSweep(t *testing.T) {
	newSystem := func() Sweepable {
		p := physics.NewSpringPendulum()
		_ = p.SetStiffness(2000)
		return p
	}
	cfg := dynamo.Config{Dt: 1.0 / 120.0, Duration: 20}

	points, err := Sweep(context.Background(), newSystem, physics.ParamRestLength, 1, 4, 2, physics.LabelX, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 || points[0].Param != 1 || points[1].Param != 4 {
		t.Fatalf("unexpected sweep points: %+v", points)
	}
	if !(points[1].Period > 1.5*points[0].Period) {
		t.Errorf("longer pendulum should swing slower: %+v", points)
	}
	if points[1].Peak <= points[0].Peak {
		t.Errorf("longer pendulum should swing wider at the same angle: %+v", points)
	}

	_, err = Sweep(context.Background(), newSystem, "colour", 1, 2, 2, physics.LabelX, cfg)
	if !errors.Is(err, dynamo.ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestSeparationRate(t *testing.T) {
	a := stiffPendulum(t)
	if _, err := SeparationRate(context.Background(), a, stiffPendulum(t), 0.01, 1); err == nil {
		t.Error("expected error for identical starts")
	}

	params := a.Params()
	params.InitialAngle += 1e-6
	b, err := physics.NewWithParams(params)
	if err != nil {
		t.Fatal(err)
	}
	rate, err := SeparationRate(context.Background(), stiffPendulum(t), b, 1.0/600.0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		t.Errorf("expected finite rate, got %f", rate)
	}
}
