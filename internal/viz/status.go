package viz

import (
	"fmt"
	"math"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/san-kum/swingsim/internal/physics"
)

// StatusBoard keeps the human readable status lines of the live view. It
// receives parameter changes as a physics.Notifier and per tick readouts
// through Observe.
type StatusBoard struct {
	settings *orderedmap.OrderedMap[string, string]
	readouts *orderedmap.OrderedMap[string, string]
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		settings: orderedmap.NewOrderedMap[string, string](),
		readouts: orderedmap.NewOrderedMap[string, string](),
	}
}

// Sync writes a line for every parameter, as after a fresh start.
func (s *StatusBoard) Sync(p physics.Parameters) {
	s.ParamChanged(physics.ParamRestLength, p.RestLength)
	s.ParamChanged(physics.ParamMass, p.Mass)
	s.ParamChanged(physics.ParamStiffness, p.Stiffness)
	s.ParamChanged(physics.ParamGravity, p.Gravity)
	s.ModeChanged(p.Mode)
}

func (s *StatusBoard) ParamChanged(name string, value float64) {
	s.settings.Set(name, FormatParam(name, value))
}

func (s *StatusBoard) ModeChanged(mode physics.Mode) {
	s.settings.Set(physics.ParamRope, "Mode: "+mode.String())
}

// Observe refreshes the angle and measured length readouts.
func (s *StatusBoard) Observe(d physics.Diagnostics) {
	s.readouts.Set("angle", FormatAngle(d.Angle))
	s.readouts.Set("radius", FormatLength(d.Radius))
	taut := "slack"
	if d.Taut {
		taut = "taut"
	}
	if d.Dragging {
		taut = "held"
	}
	s.readouts.Set("tension", fmt.Sprintf("Tension: %.2fN (%s)", d.TensionForce, taut))
}

func (s *StatusBoard) Settings() []string { return values(s.settings) }
func (s *StatusBoard) Readouts() []string { return values(s.readouts) }

// Line returns the current line for key, searching settings first.
func (s *StatusBoard) Line(key string) (string, bool) {
	if v, ok := s.settings.Get(key); ok {
		return v, true
	}
	return s.readouts.Get(key)
}

func values(m *orderedmap.OrderedMap[string, string]) []string {
	out := make([]string, 0, m.Len())
	for el := m.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func FormatLength(v float64) string { return fmt.Sprintf("Length: %.2fm", v) }

func FormatAngle(rad float64) string {
	return fmt.Sprintf("Angle: %.2f°", rad*180/math.Pi)
}

func FormatParam(name string, value float64) string {
	switch name {
	case physics.ParamRestLength:
		return FormatLength(value)
	case physics.ParamMass:
		return fmt.Sprintf("Mass: %.2fkg", value)
	case physics.ParamStiffness:
		return fmt.Sprintf("Coefficient: %g", value)
	case physics.ParamGravity:
		return fmt.Sprintf("Gravity: %.2fm/s²", value)
	}
	return fmt.Sprintf("%s: %g", name, value)
}
