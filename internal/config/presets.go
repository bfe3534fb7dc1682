package config

import (
	"sort"

	"github.com/san-kum/swingsim/internal/physics"
)

var Presets = map[string]map[string]*Config{
	"spring": {
		"gentle": {
			Pendulum: PendulumConfig{Mass: 1, RestLength: 3, Stiffness: 20, Mode: physics.Spring, InitialAngleDeg: 30, Gravity: 9.81},
			Integrator: "symplectic", Dt: 1.0 / 60.0, Duration: 20.0,
		},
		"stiff": {
			Pendulum: PendulumConfig{Mass: 1, RestLength: 3, Stiffness: 200, Mode: physics.Spring, InitialAngleDeg: 45, Gravity: 9.81},
			Integrator: "symplectic", Dt: 1.0 / 240.0, Duration: 20.0,
		},
		"loose": {
			Pendulum: PendulumConfig{Mass: 2, RestLength: 2, Stiffness: 5, Mode: physics.Spring, InitialAngleDeg: 60, Gravity: 9.81},
			Integrator: "symplectic", Dt: 1.0 / 60.0, Duration: 30.0,
		},
		"weightless": {
			Pendulum: PendulumConfig{Mass: 1, RestLength: 3, Stiffness: 20, Mode: physics.Spring, InitialAngleDeg: 30, Gravity: 0},
			Integrator: "symplectic", Dt: 1.0 / 60.0, Duration: 60.0,
		},
	},
	"rope": {
		"taut": {
			Pendulum: PendulumConfig{Mass: 1, RestLength: 3, Stiffness: 500, Mode: physics.Rope, InitialAngleDeg: 30, Gravity: 9.81},
			Integrator: "symplectic", Dt: 1.0 / 480.0, Duration: 20.0,
		},
		"slack": {
			Pendulum: PendulumConfig{Mass: 1, RestLength: 3, Stiffness: 200, Mode: physics.Rope, InitialAngleDeg: 120, Gravity: 9.81},
			Integrator: "symplectic", Dt: 1.0 / 240.0, Duration: 20.0,
		},
	},
}

// GetPreset returns a copy of the named preset with the default log level,
// or nil when the mode or preset is unknown.
func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	cfg, ok := modePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return &c
}

func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
