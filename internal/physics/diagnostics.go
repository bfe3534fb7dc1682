package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swingsim/internal/dynamo"
)

// Diagnostics is a read-only snapshot valid until the next tick or input
// event. Tension fields are stale while dragging and zero while a rope is
// slack.
type Diagnostics struct {
	Position         mgl64.Vec2
	Velocity         mgl64.Vec2
	Angle            float64 // rad from the downward vertical
	Radius           float64 // m
	Stretch          float64 // m, radius - rest length
	TensionForce     float64 // N
	TensionDirection mgl64.Vec2
	GravityForce     float64 // N
	GravityDirection mgl64.Vec2
	Mode             Mode
	Taut             bool
	Dragging         bool
}

func (p *SpringPendulum) Diagnostics() Diagnostics {
	return Diagnostics{
		Position:         p.pos,
		Velocity:         p.vel,
		Angle:            p.angle,
		Radius:           p.radius,
		Stretch:          p.radius - p.params.RestLength,
		TensionForce:     p.tension,
		TensionDirection: p.tensionDir,
		GravityForce:     p.gravityForce,
		GravityDirection: GravityDirection,
		Mode:             p.params.Mode,
		Taut:             p.taut,
		Dragging:         p.dragging,
	}
}

func (p *SpringPendulum) Position() mgl64.Vec2 { return p.pos }
func (p *SpringPendulum) Velocity() mgl64.Vec2 { return p.vel }
func (p *SpringPendulum) Angle() float64       { return p.angle }
func (p *SpringPendulum) Radius() float64      { return p.radius }

// Column labels of State.
const (
	LabelX       = "x"
	LabelY       = "y"
	LabelVX      = "vx"
	LabelVY      = "vy"
	LabelAngle   = "angle"
	LabelRadius  = "radius"
	LabelTension = "tension"
	LabelStretch = "stretch"
)

// Index of each label within State.
const (
	IdxX = iota
	IdxY
	IdxVX
	IdxVY
	IdxAngle
	IdxRadius
	IdxTension
	IdxStretch
)

var labels = []string{LabelX, LabelY, LabelVX, LabelVY, LabelAngle, LabelRadius, LabelTension, LabelStretch}

func (p *SpringPendulum) Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

func (p *SpringPendulum) State() dynamo.State {
	return dynamo.State{
		p.pos[0], p.pos[1],
		p.vel[0], p.vel[1],
		p.angle, p.radius,
		p.tension, p.radius - p.params.RestLength,
	}
}

// Energy is kinetic plus connector plus gravitational potential, with the
// pivot as the gravitational reference. A slack rope stores nothing.
func (p *SpringPendulum) Energy() float64 {
	m := p.params.Mass
	ke := 0.5 * m * p.vel.Dot(p.vel)

	stretch := p.pos.Len() - p.params.RestLength
	pe := 0.0
	if p.params.Mode == Spring || stretch > 0 {
		pe = 0.5 * p.params.Stiffness * stretch * stretch
	}
	pe += m * p.gravityForce * p.pos[1]
	return ke + pe
}
