package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/swingsim/internal/dynamo"
)

// Default is the scheme used when none is configured.
const Default = "symplectic"

var registry = map[string]func() Scheme{
	"symplectic": func() Scheme { return NewSemiImplicitEuler() },
	"euler":      func() Scheme { return NewEuler() },
	"verlet":     func() Scheme { return NewVerlet() },
	"leapfrog":   func() Scheme { return NewLeapfrog() },
	"rk4":        func() Scheme { return NewRK4() },
	"rk45":       func() Scheme { return NewRK45() },
}

// New returns a fresh scheme by name. An empty name selects Default.
func New(name string) (Scheme, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return ctor(), nil
}

// Names lists registered schemes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
