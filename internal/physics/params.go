package physics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/swingsim/internal/dynamo"
)

const (
	DefaultMass       = 1.0
	DefaultRestLength = 3.0
	DefaultStiffness  = 20.0
	DefaultGravity    = 9.81
)

// DefaultInitialAngle is 30 degrees.
var DefaultInitialAngle = 30 * math.Pi / 180

// ErrNotDragging is returned by DragTo outside the Dragging state.
var ErrNotDragging = errors.New("physics: position override requires an active drag")

// Mode selects how the connector between pivot and bob behaves.
type Mode int

const (
	// Spring pushes and pulls: Hookean at every stretch, compression included.
	Spring Mode = iota
	// Rope only pulls: zero tension whenever the bob is inside the rope length.
	Rope
)

func (m Mode) String() string {
	switch m {
	case Spring:
		return "spring"
	case Rope:
		return "rope"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring", "":
		return Spring, nil
	case "rope":
		return Rope, nil
	}
	return Spring, fmt.Errorf("unknown mode %q (want spring or rope)", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m != Spring && m != Rope {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Parameters is the externally configurable part of the pendulum.
type Parameters struct {
	Mass         float64 // kg, > 0
	RestLength   float64 // m, > 0
	Stiffness    float64 // N/m, >= 0
	Mode         Mode
	InitialAngle float64 // rad from the downward vertical
	Gravity      float64 // m/s², >= 0; 0 disables gravity
}

func DefaultParameters() Parameters {
	return Parameters{
		Mass:         DefaultMass,
		RestLength:   DefaultRestLength,
		Stiffness:    DefaultStiffness,
		Mode:         Spring,
		InitialAngle: DefaultInitialAngle,
		Gravity:      DefaultGravity,
	}
}

// ParamError reports a rejected configuration value.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("physics: %s=%g rejected: %s", e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return dynamo.ErrParameterBounds
}

// Validate returns the first invalid field as a *ParamError.
func (p Parameters) Validate() error {
	checks := []struct {
		name      string
		value     float64
		allowZero bool
	}{
		{"mass", p.Mass, false},
		{"rest_length", p.RestLength, false},
		{"stiffness", p.Stiffness, true},
		{"gravity", p.Gravity, true},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParamError{Name: c.name, Value: c.value, Reason: "must be finite"}
		}
		if c.allowZero && c.value < 0 {
			return &ParamError{Name: c.name, Value: c.value, Reason: "must be non-negative"}
		}
		if !c.allowZero && c.value <= 0 {
			return &ParamError{Name: c.name, Value: c.value, Reason: "must be positive"}
		}
	}
	if math.IsNaN(p.InitialAngle) || math.IsInf(p.InitialAngle, 0) {
		return &ParamError{Name: "initial_angle", Value: p.InitialAngle, Reason: "must be finite"}
	}
	if p.Mode != Spring && p.Mode != Rope {
		return &ParamError{Name: "mode", Value: float64(p.Mode), Reason: "must be spring or rope"}
	}
	return nil
}
