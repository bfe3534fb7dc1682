package physics

import "github.com/go-gl/mathgl/mgl64"

// Notifier is told about every accepted parameter change. Values are raw;
// formatting belongs to the implementation.
type Notifier interface {
	ParamChanged(name string, value float64)
	ModeChanged(mode Mode)
}

// Sink mirrors the bob position, relative to the pivot, to a visual proxy.
type Sink interface {
	Publish(pos mgl64.Vec2)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(pos mgl64.Vec2)

func (f SinkFunc) Publish(pos mgl64.Vec2) { f(pos) }

type nopNotifier struct{}

func (nopNotifier) ParamChanged(string, float64) {}
func (nopNotifier) ModeChanged(Mode)             {}
