package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/swingsim/internal/dynamo"
	"github.com/san-kum/swingsim/internal/physics"
)

// BrailleGrid is a character grid of Unicode braille cells.
type BrailleGrid interface {
	Rows() [][]rune
}

// braille dot bit for each (row, column) of a 2x4 cell
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG draws every lit braille dot of grid as a circle. Each cell
// covers 2x4 sub-pixels of scale units.
func CanvasToSVG(grid BrailleGrid, scale float64) string {
	if grid == nil {
		return ""
	}
	rows := grid.Rows()
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	width := float64(cols) * scale * 2
	height := float64(len(rows)) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff88">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for row, line := range rows {
		for col, r := range line {
			if r <= 0x2800 || r > 0x28ff {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type SVGOptions struct {
	Width, Height int
	Stroke        string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 600, Height: 600, Stroke: "#00ccff"}
}

// TrajectorySVG draws the bob path of a recorded run with the pivot at the
// centre and the rest length as a dashed circle. The view is square and
// scaled so both the path and the circle fit.
func TrajectorySVG(r *dynamo.Result, restLength float64, o SVGOptions) (string, error) {
	xs, err := r.Column(physics.LabelX)
	if err != nil {
		return "", err
	}
	ys, err := r.Column(physics.LabelY)
	if err != nil {
		return "", err
	}
	if len(xs) < 2 {
		return "", fmt.Errorf("trajectory needs at least 2 points, got %d", len(xs))
	}
	if o.Width <= 0 || o.Height <= 0 {
		return "", fmt.Errorf("invalid image size %dx%d", o.Width, o.Height)
	}

	extent := restLength
	for i := range xs {
		extent = math.Max(extent, math.Max(math.Abs(xs[i]), math.Abs(ys[i])))
	}
	extent *= 1.1

	size := float64(min(o.Width, o.Height))
	scale := size / (2 * extent)
	cx, cy := float64(o.Width)/2, float64(o.Height)/2
	screen := func(x, y float64) (float64, float64) {
		return cx + x*scale, cy - y*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#444466" stroke-dasharray="4 4"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		o.Width, o.Height, o.Width, o.Height, cx, cy, restLength*scale, o.Stroke)

	for i := range xs {
		x, y := screen(xs[i], ys[i])
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	bx, by := screen(xs[len(xs)-1], ys[len(ys)-1])
	fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#888899\"/>\n", cx, cy, bx, by)
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"#ffffff\"/>\n", cx, cy)
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"8\" fill=\"#ff00ff\"/>\n", bx, by)
	sb.WriteString("</svg>")
	return sb.String(), nil
}
