// Package analysis inspects recorded pendulum trajectories.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectral estimate of the swing period
//   - [SmallAnglePeriod]: the ideal rigid pendulum reference 2π√(L/g)
//   - [TurningPoints]: times at which a component changes direction
//   - [PhasePortrait]: two recorded components plotted against each other
//   - [Sweep]: one parameter varied across fresh runs
//   - [SeparationRate]: finite-time divergence of two nearby starts
//
// The spring pendulum is chaotic at large amplitudes, so a positive
// separation rate is expected for soft springs and wide swings:
//
//	rate, err := analysis.SeparationRate(ctx, a, b, dt, 20)
package analysis
