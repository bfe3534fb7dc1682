// Package physics implements the spring/rope pendulum integrator.
//
// A [SpringPendulum] owns the bob: its position relative to the pivot, its
// velocity and the Free/Dragging interaction state. Each [SpringPendulum.Step]
// derives the polar pair through [kinematics.Probe], computes the Hookean
// tension along the angular bearing (zero for a slack rope), adds gravity and
// advances with the configured [integrators.Scheme].
//
// While dragging, Step does not integrate: the host writes the bob position
// with [SpringPendulum.DragTo] every tick and Step only refreshes the
// reported angle and length. Releasing the drag zeroes the velocity.
//
// # Collaborators
//
// A [Notifier] receives raw parameter values whenever a setter succeeds; a
// [Sink] mirrors the published bob position to a visual proxy. Neither is
// required.
//
// SpringPendulum implements [dynamo.System], [dynamo.Hamiltonian] and
// [dynamo.Configurable]. It is not safe for concurrent use.
package physics
