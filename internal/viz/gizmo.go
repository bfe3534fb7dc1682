package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/swingsim/internal/physics"
)

// Vector scales for the force and velocity arrows.
const (
	velocityScale = 0.5
	gravityScale  = 0.5
	tensionScale  = 0.2
	tensionClamp  = 10.0
)

// Gizmo is one arrow drawn from the bob, in world coordinates.
type Gizmo struct {
	Ink      Ink
	From, To mgl64.Vec2
}

// Gizmos returns the velocity, gravity, tension and resultant arrows for a
// snapshot. Nothing is drawn while the bob is held.
func Gizmos(d physics.Diagnostics) []Gizmo {
	if d.Dragging {
		return nil
	}
	at := d.Position
	velocity := d.Velocity.Mul(velocityScale)
	gravity := d.GravityDirection.Mul(gravityScale * d.GravityForce)
	tension := d.TensionDirection.Mul(tensionScale * math.Min(d.TensionForce, tensionClamp))
	resultant := gravity.Add(tension)

	return []Gizmo{
		{Ink: InkVelocity, From: at, To: at.Add(velocity)},
		{Ink: InkGravity, From: at, To: at.Add(gravity)},
		{Ink: InkTension, From: at, To: at.Add(tension)},
		{Ink: InkResultant, From: at, To: at.Add(resultant)},
	}
}

// bobRadius grows with mass, in sub-pixels.
func bobRadius(mass float64) int {
	return int(math.Min(6, 2+math.Round(mass*0.5)))
}

// drawScene renders one frame of the pendulum onto c.
func drawScene(c *Canvas, v Viewport, d physics.Diagnostics, restLength, mass float64, trail []mgl64.Vec2, gizmos bool) {
	c.Clear()

	px, py := v.ToScreen(mgl64.Vec2{})
	c.SetInk(InkRest)
	c.DrawCircle(px, py, int(math.Round(restLength*v.Scale)))

	c.SetInk(InkTrail)
	for _, p := range trail {
		c.Set(v.ToScreen(p))
	}

	bx, by := v.ToScreen(d.Position)
	c.SetInk(InkRod)
	c.DrawLine(px, py, bx, by)

	c.SetInk(InkPivot)
	c.FillDisc(px, py, 1)

	if gizmos {
		for _, g := range Gizmos(d) {
			x0, y0 := v.ToScreen(g.From)
			x1, y1 := v.ToScreen(g.To)
			c.SetInk(g.Ink)
			c.DrawLine(x0, y0, x1, y1)
			c.FillDisc(x1, y1, 1)
		}
	}

	c.SetInk(InkBob)
	c.FillDisc(bx, by, bobRadius(mass))
}
