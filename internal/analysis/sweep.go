package analysis

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/swingsim/internal/dynamo"
)

// Sweepable is a system whose parameters can be changed by name.
type Sweepable interface {
	dynamo.System
	dynamo.Configurable
	Initialize()
}

type SweepPoint struct {
	Param       float64
	Period      float64 // NaN when no oscillation was found
	Peak        float64 // largest |value| of the observed component
	EnergyDrift float64
}

// Sweep runs a fresh system for each of steps evenly spaced values of
// param in [lo, hi], restarting it from its initial pose, and records the dominant period and peak magnitude of
// the labelled component.
func Sweep(
	ctx context.Context,
	newSystem func() Sweepable,
	param string,
	lo, hi float64,
	steps int,
	label string,
	cfg dynamo.Config,
) ([]SweepPoint, error) {
	if steps < 1 {
		return nil, errors.New("analysis: sweep needs at least one step")
	}
	spacing := 0.0
	if steps > 1 {
		spacing = (hi - lo) / float64(steps-1)
	}

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		value := lo + float64(i)*spacing

		sys := newSystem()
		if err := sys.SetParam(param, value); err != nil {
			return nil, err
		}
		sys.Initialize()
		result, err := dynamo.New().Run(ctx, sys, cfg)
		if err != nil {
			return nil, err
		}
		col, err := result.Column(label)
		if err != nil {
			return nil, err
		}

		point := SweepPoint{Param: value, Period: math.NaN(), EnergyDrift: result.EnergyDrift}
		if period, err := DominantPeriod(col, cfg.Dt); err == nil {
			point.Period = period
		}
		for _, v := range col {
			point.Peak = math.Max(point.Peak, math.Abs(v))
		}
		points = append(points, point)
	}
	return points, nil
}

// SeparationRate estimates the finite-time divergence exponent of two
// systems started from nearby states, in 1/s. Only the first four state
// components (position and velocity) enter the distance.
func SeparationRate(ctx context.Context, a, b dynamo.System, dt, duration float64) (float64, error) {
	d0 := distance(a.State(), b.State())
	if d0 == 0 {
		return 0, errors.New("analysis: systems start from the same state")
	}

	steps := int(math.Round(duration / dt))
	logRatio := 0.0
	t := 0.0
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		a.Step(dt)
		b.Step(dt)
		t += dt

		d := distance(a.State(), b.State())
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		logRatio = math.Log(d / d0)
	}
	if t == 0 {
		return 0, ErrTooShort
	}
	return logRatio / t, nil
}

func distance(x, y dynamo.State) float64 {
	d := make(dynamo.State, min(4, len(x), len(y)))
	for i := range d {
		d[i] = x[i] - y[i]
	}
	return d.Norm()
}
