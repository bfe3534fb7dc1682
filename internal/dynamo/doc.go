// Package dynamo provides the host-loop primitives shared by swingsim.
//
// The package defines the small set of interfaces a tick-driven system
// exposes to a scheduler and the headless runner that drives them:
//
//   - [State]: observable vector published after every tick
//   - [System]: anything advanced by Step(dt)
//   - [Hamiltonian]: systems that can report their mechanical energy
//   - [Metric] and [Observer]: read-only consumers of published states
//   - [Simulator]: fixed-step runner used by the run and compare commands
//
// # Example
//
//	p := physics.NewSpringPendulum()
//	s := dynamo.New()
//	result, _ := s.Run(ctx, p, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Systems are single-writer. The Simulator calls Step, observers and metrics
// from one goroutine; nothing here is safe to share across goroutines.
package dynamo
