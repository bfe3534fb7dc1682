package integrators

import "github.com/go-gl/mathgl/mgl64"

// RK4 is the classic fourth-order Runge-Kutta scheme over (pos, vel).
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	half := 0.5 * dt

	k1p, k1v := vel, accel(pos)
	k2p, k2v := vel.Add(k1v.Mul(half)), accel(pos.Add(k1p.Mul(half)))
	k3p, k3v := vel.Add(k2v.Mul(half)), accel(pos.Add(k2p.Mul(half)))
	k4p, k4v := vel.Add(k3v.Mul(dt)), accel(pos.Add(k3p.Mul(dt)))

	dt6 := dt / 6.0
	pos = pos.Add(k1p.Add(k2p.Mul(2)).Add(k3p.Mul(2)).Add(k4p).Mul(dt6))
	vel = vel.Add(k1v.Add(k2v.Mul(2)).Add(k3v.Mul(2)).Add(k4v).Mul(dt6))
	return pos, vel
}
