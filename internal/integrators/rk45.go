package integrators

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Dormand-Prince tableau. Row s holds the weights of stages 0..s for stage s+1.
var dpTableau = [6][]float64{
	{1.0 / 5.0},
	{3.0 / 40.0, 9.0 / 40.0},
	{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
	{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
	{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
	{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
}

// fifth minus fourth order weights, the last entry applies to the FSAL stage.
var dpError = [7]float64{
	35.0/384.0 - 5179.0/57600.0,
	0,
	500.0/1113.0 - 7571.0/16695.0,
	125.0/192.0 - 393.0/640.0,
	-2187.0/6784.0 + 92097.0/339200.0,
	11.0/84.0 - 187.0/2100.0,
	-1.0 / 40.0,
}

// RK45 is the Dormand-Prince 5(4) pair. Advance takes a fixed step with the
// fifth order solution; AdvanceAdaptive also proposes the next step size.
type RK45 struct {
	Tolerance float64
	safety    float64
	minScale  float64
	maxScale  float64
}

func NewRK45() *RK45 {
	return &RK45{
		Tolerance: 1e-6,
		safety:    0.9,
		minScale:  0.2,
		maxScale:  10.0,
	}
}

func (r *RK45) Name() string { return "rk45" }

func (r *RK45) Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	pos, vel, _ = r.AdvanceAdaptive(pos, vel, accel, dt)
	return pos, vel
}

// AdvanceAdaptive returns the step result and a step size that would keep
// the local error estimate near Tolerance.
func (r *RK45) AdvanceAdaptive(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2, float64) {
	var kp, kv [7]mgl64.Vec2
	kp[0], kv[0] = vel, accel(pos)

	for s, row := range dpTableau {
		p, v := pos, vel
		for j, b := range row {
			p = p.Add(kp[j].Mul(dt * b))
			v = v.Add(kv[j].Mul(dt * b))
		}
		kp[s+1], kv[s+1] = v, accel(p)
	}
	// the last tableau row is the solution itself
	nextPos, nextVel := pos, vel
	for j, b := range dpTableau[5] {
		nextPos = nextPos.Add(kp[j].Mul(dt * b))
		nextVel = nextVel.Add(kv[j].Mul(dt * b))
	}

	errMax := 0.0
	for i := 0; i < 2; i++ {
		var ep, ev float64
		for j, e := range dpError {
			ep += e * kp[j][i]
			ev += e * kv[j][i]
		}
		errMax = math.Max(errMax, math.Abs(dt*ep)/(math.Abs(pos[i])+math.Abs(dt*kp[0][i])+1e-10))
		errMax = math.Max(errMax, math.Abs(dt*ev)/(math.Abs(vel[i])+math.Abs(dt*kv[0][i])+1e-10))
	}

	ratio := errMax / r.Tolerance
	var scale float64
	switch {
	case ratio > 1:
		scale = math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25))
	case ratio > 0:
		scale = math.Min(r.maxScale, r.safety*math.Pow(ratio, -0.2))
	default:
		scale = r.maxScale
	}
	return nextPos, nextVel, dt * scale
}
