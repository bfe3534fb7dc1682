// Package viz hosts a spring pendulum in the terminal.
//
// The live view is a Bubble Tea program that steps the pendulum 60 times a
// second and draws it on a braille [Canvas]: pivot, rest-length circle,
// rod, bob and the velocity, gravity, tension and resultant arrows. The
// bob can be grabbed and moved with the mouse; while it is held the
// pendulum does not integrate, and on release it falls from rest.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Back to the initial angle
//	V     - Zero the velocity
//	Tab   - Cycle parameters, Up/Down to tune
//	O     - Toggle rope / spring
//	F     - Toggle force arrows
//	S     - Save an SVG snapshot of the canvas
//	?     - Show help overlay
package viz
