package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swingsim/internal/dynamo"
)

// harmonic is a unit-mass, unit-stiffness oscillator about the origin.
func harmonic(pos mgl64.Vec2) mgl64.Vec2 { return pos.Mul(-1) }

func energy(pos, vel mgl64.Vec2) float64 {
	return 0.5*vel.Dot(vel) + 0.5*pos.Dot(pos)
}

func run(s Scheme, steps int, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	pos, vel := mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0}
	for i := 0; i < steps; i++ {
		pos, vel = s.Advance(pos, vel, harmonic, dt)
	}
	return pos, vel
}

func TestSemiImplicitEulerOrder(t *testing.T) {
	pos, vel := NewSemiImplicitEuler().Advance(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0}, harmonic, 0.1)

	// velocity first: v = 0 + (-1)(0.1), then x = 1 + v(0.1)
	if math.Abs(vel[0]+0.1) > 1e-12 {
		t.Errorf("velocity: expected -0.1, got %f", vel[0])
	}
	if math.Abs(pos[0]-0.99) > 1e-12 {
		t.Errorf("position: expected 0.99, got %f", pos[0])
	}
}

func TestExplicitEulerOrder(t *testing.T) {
	pos, vel := NewEuler().Advance(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0}, harmonic, 0.1)
	if pos[0] != 1 {
		t.Errorf("position must move with the old velocity, got %f", pos[0])
	}
	if math.Abs(vel[0]+0.1) > 1e-12 {
		t.Errorf("velocity: expected -0.1, got %f", vel[0])
	}
}

func TestEnergyBehaviour(t *testing.T) {
	dt := 1.0 / 60.0
	steps := 10000
	e0 := energy(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0})

	tests := []struct {
		scheme   Scheme
		maxDrift float64
	}{
		{NewSemiImplicitEuler(), 0.02},
		{NewVerlet(), 1e-3},
		{NewLeapfrog(), 1e-3},
		{NewRK4(), 1e-6},
		{NewRK45(), 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.Name(), func(t *testing.T) {
			pos, vel := run(tt.scheme, steps, dt)
			drift := math.Abs(energy(pos, vel)-e0) / e0
			if drift > tt.maxDrift {
				t.Errorf("energy drift %.4f exceeds %.4f", drift, tt.maxDrift)
			}
		})
	}

	pos, vel := run(NewEuler(), steps, dt)
	if energy(pos, vel) <= e0*1.5 {
		t.Errorf("explicit euler should gain energy, got %.4f from %.4f", energy(pos, vel), e0)
	}
}

func TestLeapfrogMatchesVerlet(t *testing.T) {
	lp, lv := run(NewLeapfrog(), 500, 0.01)
	vp, vv := run(NewVerlet(), 500, 0.01)
	if lp.Sub(vp).Len() > 1e-9 || lv.Sub(vv).Len() > 1e-9 {
		t.Errorf("leapfrog %v %v, verlet %v %v", lp, lv, vp, vv)
	}
}

func TestRK4Accuracy(t *testing.T) {
	// a quarter period of x'' = -x from (1, 0) ends at (0, -1)
	steps := 1000
	pos, vel := run(NewRK4(), steps, math.Pi/2/float64(steps))
	if math.Abs(pos[0]) > 1e-9 || math.Abs(vel[0]+1) > 1e-9 {
		t.Errorf("expected (0, -1), got (%g, %g)", pos[0], vel[0])
	}
}

func TestRK45AdaptiveStep(t *testing.T) {
	rk := NewRK45()
	pos, vel := mgl64.Vec2{1, 0}, mgl64.Vec2{}

	_, _, shrink := rk.AdvanceAdaptive(pos, vel, harmonic, 1.0)
	if shrink >= 1.0 {
		t.Errorf("a coarse step should propose a smaller one, got %g", shrink)
	}
	_, _, grow := rk.AdvanceAdaptive(pos, vel, harmonic, 1e-3)
	if grow <= 1e-3 {
		t.Errorf("a fine step should propose a larger one, got %g", grow)
	}

	fp, fv := rk.Advance(pos, vel, harmonic, 0.01)
	ap, av, _ := rk.AdvanceAdaptive(pos, vel, harmonic, 0.01)
	if fp != ap || fv != av {
		t.Error("Advance should return the adaptive step result")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("expected name %s, got %s", name, s.Name())
		}
	}

	s, err := New("")
	if err != nil || s.Name() != Default {
		t.Errorf("empty name should select %s, got %v (%v)", Default, s, err)
	}

	if _, err := New("midpoint"); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}
