package dynamo

import (
	"fmt"
	"math"
)

// State is the observable vector a System publishes after each tick.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is advanced once per tick by a host scheduler.
type System interface {
	Step(dt float64)
	State() State
	Labels() []string
}

type Hamiltonian interface {
	Energy() float64
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	Labels      []string
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Column extracts one labelled component across every recorded state.
func (r *Result) Column(label string) ([]float64, error) {
	idx := -1
	for i, l := range r.Labels {
		if l == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no column %q", label)
	}
	col := make([]float64, 0, len(r.States))
	for _, s := range r.States {
		if idx < len(s) {
			col = append(col, s[idx])
		}
	}
	return col, nil
}
