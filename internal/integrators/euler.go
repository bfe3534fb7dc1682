// Package integrators advances a planar point mass one tick given an
// acceleration field.
package integrators

import "github.com/go-gl/mathgl/mgl64"

// Accel evaluates the acceleration acting on the bob at a position.
type Accel func(pos mgl64.Vec2) mgl64.Vec2

// Scheme advances position and velocity by dt.
type Scheme interface {
	Name() string
	Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2)
}

// SemiImplicitEuler updates velocity from the current force first, then
// position from the updated velocity. Energy error stays bounded for
// oscillators instead of growing every period.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Name() string { return "symplectic" }

func (e *SemiImplicitEuler) Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	vel = vel.Add(accel(pos).Mul(dt))
	pos = pos.Add(vel.Mul(dt))
	return pos, vel
}

// Euler is the explicit forward scheme: position moves with the old
// velocity. Kept for comparison runs; it gains energy on every swing.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Advance(pos, vel mgl64.Vec2, accel Accel, dt float64) (mgl64.Vec2, mgl64.Vec2) {
	a := accel(pos)
	pos = pos.Add(vel.Mul(dt))
	vel = vel.Add(a.Mul(dt))
	return pos, vel
}
