// Package export renders runs as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/pskrzyn/geosim/internal/geom"
)

const (
	svgPad        = 20.0
	svgBackground = "#0a0a0a"
	pointColor    = "#5f5fff"
	hullColor     = "#00ff87"
	curveColor    = "#00ff87"
)

// HullSVG draws the input point set as dots with the hull sequence overlaid
// as a polyline through enlarged markers.
func HullSVG(points, hullPts []geom.Point, width, height int) string {
	if len(points) == 0 {
		return ""
	}

	minX, minY, maxX, maxY := bounds(points)
	project := projector(minX, minY, maxX, maxY, float64(width), float64(height))

	var sb strings.Builder
	writeHeader(&sb, width, height)

	sb.WriteString(fmt.Sprintf("<g fill=%q>\n", pointColor))
	for _, p := range points {
		x, y := project(p)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2.5\"/>\n", x, y))
	}
	sb.WriteString("</g>\n")

	if len(hullPts) > 0 {
		coords := make([]string, 0, len(hullPts))
		for _, p := range hullPts {
			x, y := project(p)
			coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString(fmt.Sprintf(
			"<polyline points=%q fill=\"none\" stroke=%q stroke-width=\"1.5\"/>\n",
			strings.Join(coords, " "), hullColor))

		sb.WriteString(fmt.Sprintf("<g fill=\"none\" stroke=%q>\n", hullColor))
		for _, p := range hullPts {
			x, y := project(p)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"5\"/>\n", x, y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// CurveSVG draws one series against time as a polyline.
func CurveSVG(times, values []float64, width, height int) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}

	pts := make([]geom.Point, len(times))
	for i := range times {
		pts[i] = geom.Pt(times[i], values[i])
	}
	minX, minY, maxX, maxY := bounds(pts)
	project := projector(minX, minY, maxX, maxY, float64(width), float64(height))

	var sb strings.Builder
	writeHeader(&sb, width, height)

	coords := make([]string, 0, len(pts))
	for _, p := range pts {
		x, y := project(p)
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString(fmt.Sprintf(
		"<polyline points=%q fill=\"none\" stroke=%q stroke-width=\"1.5\"/>\n",
		strings.Join(coords, " "), curveColor))

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill=%q/>
`, width, height, width, height, svgBackground))
}

// projector maps world coordinates into the padded SVG viewport, flipping y
// so larger world values render higher.
func projector(minX, minY, maxX, maxY, width, height float64) func(geom.Point) (float64, float64) {
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	return func(p geom.Point) (float64, float64) {
		x := svgPad + (width-2*svgPad)*(p.X-minX)/spanX
		y := height - svgPad - (height-2*svgPad)*(p.Y-minY)/spanY
		return x, y
	}
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
