package integrators

import "github.com/go-gl/mathgl/mgl64"

// Verlet is velocity Verlet. It evaluates the acceleration twice per tick.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	a0 := accel(pos)
	next := pos.Add(vel.Mul(dt)).Add(a0.Mul(0.5 * dt * dt))
	a1 := accel(next)
	vel = vel.Add(a0.Add(a1).Mul(0.5 * dt))
	return next, vel
}

// Leapfrog is the kick-drift-kick form: a half kick, a full drift at the
// half-step velocity, then a second half kick at the new position.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	halfDt := 0.5 * dt
	vel = vel.Add(accel(pos).Mul(halfDt))
	pos = pos.Add(vel.Mul(dt))
	vel = vel.Add(accel(pos).Mul(halfDt))
	return pos, vel
}
