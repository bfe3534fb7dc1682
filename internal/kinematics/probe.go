// Package kinematics converts a pivot-relative bob position into the polar
// pair used by the force law: angle from the downward vertical and radial
// length.
//
// Input must be finite. NaN or Inf components produce undefined output.
package kinematics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Polar returns the angle from the downward vertical (positive toward +x)
// and the radius of rel. The angle stays continuous when the bob swings
// above the pivot: it grows past ±π/2 toward ±π instead of wrapping.
// ok is false when rel coincides with the pivot and the angle is undefined.
func Polar(rel mgl64.Vec2) (angle, radius float64, ok bool) {
	x, y := rel[0], rel[1]
	radius = math.Hypot(x, y)
	if radius == 0 {
		return 0, 0, false
	}

	angle = math.Atan2(x, math.Abs(y))
	if y > 0 {
		angle = sign(x)*math.Pi - angle
	}
	return angle, radius, true
}

// sign treats zero as positive so a bob straight above the pivot reads π.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Probe remembers the last reported angle as the fallback for the
// degenerate pivot position.
type Probe struct {
	angle  float64
	radius float64
}

func NewProbe() *Probe {
	return &Probe{}
}

// Compute derives (angle, radius) for rel. At the pivot the previous angle
// is returned with radius 0.
func (p *Probe) Compute(rel mgl64.Vec2) (angle, radius float64) {
	a, r, ok := Polar(rel)
	if ok {
		p.angle = a
	}
	p.radius = r
	return p.angle, p.radius
}

// Reset forgets the remembered angle.
func (p *Probe) Reset() {
	p.angle, p.radius = 0, 0
}
