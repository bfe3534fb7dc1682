package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooShort = errors.New("analysis: series too short")

// FFT transforms data zero padded to the next power of two, so bin k
// lies at k/(n·dt) for the padded length n.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	if n != len(data) {
		padded := make([]float64, n)
		copy(padded, data)
		data = padded
	}
	return fft.FFTReal(data)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns magnitudes of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	bins := FFT(data)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantPeriod estimates the strongest oscillation period in seconds of
// a series sampled every dt. The mean is removed first and the peak bin is
// refined by parabolic interpolation.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, ErrTooShort
	}
	if dt <= 0 {
		return 0, errors.New("analysis: dt must be positive")
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))
	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak == 0 || ps[peak] == 0 {
		return 0, errors.New("analysis: no oscillation found")
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			bin += 0.5 * (a - c) / denom
		}
	}

	n := float64(nextPow2(len(samples)))
	return n * dt / bin, nil
}

// SmallAnglePeriod is 2π√(L/g) for a rigid pendulum of the given length.
func SmallAnglePeriod(length, gravity float64) float64 {
	if length <= 0 || gravity <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * math.Sqrt(length/gravity)
}
