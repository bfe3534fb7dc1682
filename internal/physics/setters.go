package physics

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/san-kum/swingsim/internal/dynamo"
)

// Parameter names used by GetParams, SetParam and Notifier.
const (
	ParamRestLength = "length"
	ParamMass       = "mass"
	ParamStiffness  = "stiffness"
	ParamGravity    = "gravity"
	ParamRope       = "rope"
)

func (p *SpringPendulum) SetRestLength(v float64) error {
	next := p.params
	next.RestLength = v
	return p.Configure(next)
}

func (p *SpringPendulum) SetMass(v float64) error {
	next := p.params
	next.Mass = v
	return p.Configure(next)
}

func (p *SpringPendulum) SetStiffness(v float64) error {
	next := p.params
	next.Stiffness = v
	return p.Configure(next)
}

func (p *SpringPendulum) SetGravity(v float64) error {
	next := p.params
	next.Gravity = v
	return p.Configure(next)
}

func (p *SpringPendulum) SetMode(m Mode) error {
	next := p.params
	next.Mode = m
	return p.Configure(next)
}

// OrderedParams lists the tunable parameters in display order. Rope mode is
// reported as 1, spring as 0.
func (p *SpringPendulum) OrderedParams() *orderedmap.OrderedMap[string, float64] {
	m := orderedmap.NewOrderedMap[string, float64]()
	m.Set(ParamRestLength, p.params.RestLength)
	m.Set(ParamMass, p.params.Mass)
	m.Set(ParamStiffness, p.params.Stiffness)
	m.Set(ParamGravity, p.params.Gravity)
	rope := 0.0
	if p.params.Mode == Rope {
		rope = 1
	}
	m.Set(ParamRope, rope)
	return m
}

func (p *SpringPendulum) GetParams() map[string]float64 {
	ordered := p.OrderedParams()
	out := make(map[string]float64, ordered.Len())
	for el := ordered.Front(); el != nil; el = el.Next() {
		out[el.Key] = el.Value
	}
	return out
}

func (p *SpringPendulum) SetParam(name string, value float64) error {
	switch name {
	case ParamRestLength:
		return p.SetRestLength(value)
	case ParamMass:
		return p.SetMass(value)
	case ParamStiffness:
		return p.SetStiffness(value)
	case ParamGravity:
		return p.SetGravity(value)
	case ParamRope:
		if value != 0 {
			return p.SetMode(Rope)
		}
		return p.SetMode(Spring)
	}
	return fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
}
