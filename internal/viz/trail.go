package viz

import "github.com/go-gl/mathgl/mgl64"

// Trail keeps the most recent bob positions. It is a physics.Sink.
type Trail struct {
	points []mgl64.Vec2
	limit  int
}

func NewTrail(limit int) *Trail {
	return &Trail{points: make([]mgl64.Vec2, 0, limit), limit: limit}
}

func (t *Trail) Publish(pos mgl64.Vec2) {
	if t.limit <= 0 {
		return
	}
	if len(t.points) == t.limit {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.limit-1]
	}
	t.points = append(t.points, pos)
}

func (t *Trail) Points() []mgl64.Vec2 { return t.points }

func (t *Trail) Reset() { t.points = t.points[:0] }
