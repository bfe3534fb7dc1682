package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport maps pivot-relative world metres to canvas sub-pixels. The
// world y axis points up, the screen y axis down.
type Viewport struct {
	OriginX, OriginY int     // sub-pixel of the pivot
	Scale            float64 // sub-pixels per metre
}

// viewMargin is how far beyond the rest length the view reaches.
const viewMargin = 1.8

// FitViewport centres the pivot and scales so a circle of viewMargin
// times restLength fits the canvas.
func FitViewport(c *Canvas, restLength float64) Viewport {
	w, h := c.SubWidth(), c.SubHeight()
	half := float64(min(w, h)) / 2
	scale := 1.0
	if restLength > 0 {
		scale = half / (restLength * viewMargin)
	}
	return Viewport{OriginX: w / 2, OriginY: h / 2, Scale: scale}
}

func (v Viewport) ToScreen(p mgl64.Vec2) (int, int) {
	return v.OriginX + int(math.Round(p[0]*v.Scale)),
		v.OriginY - int(math.Round(p[1]*v.Scale))
}

func (v Viewport) ToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(x-v.OriginX) / v.Scale,
		float64(v.OriginY-y) / v.Scale,
	}
}

// CellToWorld maps a terminal cell, relative to the canvas top-left, to
// the world position under the centre of that cell.
func (v Viewport) CellToWorld(col, row int) mgl64.Vec2 {
	return v.ToWorld(col*2+1, row*4+2)
}
