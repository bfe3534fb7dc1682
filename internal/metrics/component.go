package metrics

import (
	"math"

	"github.com/san-kum/swingsim/internal/dynamo"
)

// Peak records the largest |x[index]| seen.
type Peak struct {
	name  string
	index int
	peak  float64
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index >= len(x) {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(x[p.index]))
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }

// ZeroFraction is the share of observations where x[index] is exactly zero.
// On the tension column in rope mode this is the slack time.
type ZeroFraction struct {
	name    string
	index   int
	zeros   int
	samples int
}

func NewZeroFraction(name string, index int) *ZeroFraction {
	return &ZeroFraction{name: name, index: index}
}

func (z *ZeroFraction) Name() string { return z.name }

func (z *ZeroFraction) Observe(x dynamo.State, t float64) {
	if z.index >= len(x) {
		return
	}
	z.samples++
	if x[z.index] == 0 {
		z.zeros++
	}
}

func (z *ZeroFraction) Value() float64 {
	if z.samples == 0 {
		return 0
	}
	return float64(z.zeros) / float64(z.samples)
}

func (z *ZeroFraction) Reset() {
	z.zeros = 0
	z.samples = 0
}
