package metrics

import (
	"github.com/san-kum/swingsim/internal/dynamo"
	"github.com/san-kum/swingsim/internal/physics"
)

// ForPendulum returns the metric set recorded for every pendulum run.
func ForPendulum(p *physics.SpringPendulum) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(p),
		NewPeak("peak_tension", physics.IdxTension),
		NewPeak("peak_stretch", physics.IdxStretch),
		NewZeroFraction("slack_fraction", physics.IdxTension),
	}
}
