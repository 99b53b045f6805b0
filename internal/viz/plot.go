// Package viz renders simulation series and point sets for the terminal:
// asciigraph line plots, a braille-pixel canvas for scatter views, and a
// bubbletea live view of the control loop.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/pskrzyn/geosim/internal/geom"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// Series renders one time series as an asciigraph plot with a caption.
func Series(caption string, data []float64) string {
	if len(data) == 0 {
		return fmt.Sprintf("(no data) %s", caption)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Scatter renders a point set on a braille canvas, drawing the hull sequence
// as a connected chain over the scattered input points.
func Scatter(points, hullPts []geom.Point, width, height int) string {
	if len(points) == 0 {
		return "(no points)"
	}

	c := NewCanvas(width, height)
	minX, minY, maxX, maxY := bounds(points)

	// Degenerate extents still need a non-zero scale.
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	px := func(p geom.Point) (int, int) {
		x := int(float64(c.PixelWidth()-1) * (p.X - minX) / spanX)
		// Flip y: canvas rows grow downward.
		y := int(float64(c.PixelHeight()-1) * (maxY - p.Y) / spanY)
		return x, y
	}

	for _, p := range points {
		x, y := px(p)
		c.Set(x, y)
	}
	for i := 1; i < len(hullPts); i++ {
		x0, y0 := px(hullPts[i-1])
		x1, y1 := px(hullPts[i])
		c.Line(x0, y0, x1, y1)
	}

	var sb strings.Builder
	sb.WriteString(c.Render())
	sb.WriteString(fmt.Sprintf("\nx: [%.2f, %.2f]  y: [%.2f, %.2f]  points: %d  hull: %d\n",
		minX, maxX, minY, maxY, len(points), len(hullPts)))
	return sb.String()
}

func bounds(points []geom.Point) (minX, minY, maxX, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}
