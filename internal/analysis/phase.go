package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/swingsim/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds two recorded components plotted against each other.
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

func PhasePortrait(r *dynamo.Result, xLabel, yLabel string) (*PhasePortrait2D, error) {
	xs, err := r.Column(xLabel)
	if err != nil {
		return nil, err
	}
	ys, err := r.Column(yLabel)
	if err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{XLabel: xLabel, YLabel: yLabel, Points: make([]Point, len(xs))}
	for i := range xs {
		portrait.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return portrait, nil
}

// TurningPoints returns the interpolated times at which the labelled
// component crosses zero going upward.
func TurningPoints(r *dynamo.Result, label string) ([]float64, error) {
	col, err := r.Column(label)
	if err != nil {
		return nil, err
	}
	if len(col) != len(r.Times) {
		return nil, fmt.Errorf("column %q has %d samples for %d times", label, len(col), len(r.Times))
	}

	times := make([]float64, 0)
	for i := 1; i < len(col); i++ {
		prev, curr := col[i-1], col[i]
		if prev < 0 && curr >= 0 {
			frac := -prev / (curr - prev)
			times = append(times, r.Times[i-1]+frac*(r.Times[i]-r.Times[i-1]))
		}
	}
	return times, nil
}

// MeanInterval averages the gaps between consecutive times.
func MeanInterval(times []float64) (float64, error) {
	if len(times) < 2 {
		return 0, ErrTooShort
	}
	return (times[len(times)-1] - times[0]) / float64(len(times)-1), nil
}

// ToASCII renders the portrait on a width by height character grid,
// drawing the axes where they fall inside the bounds.
func (p *PhasePortrait2D) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	for _, pt := range p.Points {
		r, c := row(pt.Y), col(pt.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			if grid[r][c] == ' ' {
				grid[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			if grid[r][c] == ' ' {
				grid[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
