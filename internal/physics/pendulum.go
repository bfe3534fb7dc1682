package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swingsim/internal/integrators"
	"github.com/san-kum/swingsim/internal/kinematics"
)

// GravityDirection is fixed in the world frame.
var GravityDirection = mgl64.Vec2{0, -1}

type SpringPendulum struct {
	params       Parameters
	gravityForce float64

	scheme   integrators.Scheme
	probe    *kinematics.Probe
	notifier Notifier
	sinks    []Sink

	pos, vel      mgl64.Vec2
	angle, radius float64
	dragging      bool

	tension    float64
	tensionDir mgl64.Vec2
	taut       bool
}

// NewSpringPendulum returns an initialized pendulum with default parameters.
func NewSpringPendulum() *SpringPendulum {
	p, _ := NewWithParams(DefaultParameters())
	return p
}

// NewWithParams validates params and places the bob at its hanging position.
func NewWithParams(params Parameters) (*SpringPendulum, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	p := &SpringPendulum{
		params:       params,
		gravityForce: params.Mass * params.Gravity,
		scheme:       integrators.NewSemiImplicitEuler(),
		probe:        kinematics.NewProbe(),
		notifier:     nopNotifier{},
	}
	p.Initialize()
	return p, nil
}

func (p *SpringPendulum) SetScheme(s integrators.Scheme) {
	if s != nil {
		p.scheme = s
	}
}

func (p *SpringPendulum) Scheme() integrators.Scheme { return p.scheme }

func (p *SpringPendulum) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	p.notifier = n
}

func (p *SpringPendulum) AddSink(s Sink) { p.sinks = append(p.sinks, s) }

func (p *SpringPendulum) Params() Parameters { return p.params }

// Configure replaces the parameters. Invalid input is rejected and the
// previous parameters stay in force. Position and velocity are untouched;
// a new mass changes the gravity force from the next Step on.
func (p *SpringPendulum) Configure(params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	prev := p.params
	p.params = params
	p.gravityForce = params.Mass * params.Gravity
	p.notifyDiff(prev, params)
	return nil
}

func (p *SpringPendulum) notifyDiff(prev, next Parameters) {
	if prev.RestLength != next.RestLength {
		p.notifier.ParamChanged(ParamRestLength, next.RestLength)
	}
	if prev.Mass != next.Mass {
		p.notifier.ParamChanged(ParamMass, next.Mass)
	}
	if prev.Stiffness != next.Stiffness {
		p.notifier.ParamChanged(ParamStiffness, next.Stiffness)
	}
	if prev.Gravity != next.Gravity {
		p.notifier.ParamChanged(ParamGravity, next.Gravity)
	}
	if prev.Mode != next.Mode {
		p.notifier.ModeChanged(next.Mode)
	}
}

// Initialize places the bob at restLength*(-sin θ₀, -cos θ₀), zeroes the
// velocity and leaves the Dragging state.
func (p *SpringPendulum) Initialize() {
	th := p.params.InitialAngle
	p.pos = mgl64.Vec2{-math.Sin(th), -math.Cos(th)}.Mul(p.params.RestLength)
	p.vel = mgl64.Vec2{}
	p.dragging = false
	p.probe.Reset()
	p.angle, p.radius = p.probe.Compute(p.pos)
	p.tension, p.tensionDir, p.taut = 0, mgl64.Vec2{}, false
	p.publish()
}

// ResetDynamics zeroes the velocity and keeps the position.
func (p *SpringPendulum) ResetDynamics() {
	p.vel = mgl64.Vec2{}
}

// BeginDrag suspends integration until EndDrag.
func (p *SpringPendulum) BeginDrag() {
	p.dragging = true
}

// EndDrag resumes integration from rest at the dragged position.
func (p *SpringPendulum) EndDrag() {
	p.dragging = false
	p.ResetDynamics()
}

func (p *SpringPendulum) Dragging() bool { return p.dragging }

// DragTo overrides the bob position during a drag. The position is already
// resolved to pivot-relative world coordinates by the host.
func (p *SpringPendulum) DragTo(pos mgl64.Vec2) error {
	if !p.dragging {
		return ErrNotDragging
	}
	p.pos = pos
	p.angle, p.radius = p.probe.Compute(p.pos)
	p.publish()
	return nil
}

// Step advances one tick. While dragging it only refreshes angle and length.
func (p *SpringPendulum) Step(dt float64) {
	p.angle, p.radius = p.probe.Compute(p.pos)
	if p.dragging {
		return
	}

	force, taut := TensionForce(p.params.Mode, p.params.Stiffness, p.params.RestLength, p.angle, p.radius)
	p.taut = taut
	p.tension = force.Len()
	p.tensionDir = unit(force)

	p.pos, p.vel = p.scheme.Advance(p.pos, p.vel, p.acceleration, dt)
	p.publish()
}

// acceleration evaluates the velocity rate at pos. Gravity enters as
// gravityForce per unit time, as the tension does per unit mass; with the
// default 1 kg bob this is plain g.
func (p *SpringPendulum) acceleration(pos mgl64.Vec2) mgl64.Vec2 {
	angle, radius := p.angle, p.radius
	if pos != p.pos {
		a, r, ok := kinematics.Polar(pos)
		if ok {
			angle = a
		}
		radius = r
	}
	force, _ := TensionForce(p.params.Mode, p.params.Stiffness, p.params.RestLength, angle, radius)
	tension := unit(force).Mul(force.Len() / p.params.Mass)
	return tension.Add(GravityDirection.Mul(p.gravityForce))
}

func (p *SpringPendulum) publish() {
	for _, s := range p.sinks {
		s.Publish(p.pos)
	}
}

// TensionForce is the connector force on the bob in the world frame for a
// bob at (angle, radius). A rope inside its length is slack: zero force and
// taut false. Otherwise the Hookean force is directed along the angular
// bearing: (-k·s·sin a, k·s·cos a) with s = radius - restLength.
func TensionForce(mode Mode, k, restLength, angle, radius float64) (mgl64.Vec2, bool) {
	stretch := radius - restLength
	if mode == Rope && stretch < 0 {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{-k * stretch * math.Sin(angle), k * stretch * math.Cos(angle)}, true
}

// RadialTensionForce is the same law written with the radial unit vector
// pos/|pos|. It agrees with TensionForce up to rounding wherever the angle
// was derived from pos.
func RadialTensionForce(mode Mode, k, restLength float64, pos mgl64.Vec2) (mgl64.Vec2, bool) {
	radius := pos.Len()
	stretch := radius - restLength
	if mode == Rope && stretch < 0 {
		return mgl64.Vec2{}, false
	}
	if radius == 0 {
		return mgl64.Vec2{}, true
	}
	return pos.Mul(-k * stretch / radius), true
}

func unit(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}
