package export

import (
	"strings"
	"testing"

	"github.com/pskrzyn/geosim/internal/geom"
)

func TestHullSVG(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 4), geom.Pt(0, 4), geom.Pt(2, 2),
	}
	hullPts := []geom.Point{
		geom.Pt(0, 0), geom.Pt(0, 4), geom.Pt(2, 2), geom.Pt(4, 0),
	}

	svg := HullSVG(points, hullPts, 400, 400)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml prolog")
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing hull polyline")
	}
	if got := strings.Count(svg, "<circle"); got != len(points)+len(hullPts) {
		t.Errorf("expected %d circles, got %d", len(points)+len(hullPts), got)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("unterminated svg document")
	}
}

func TestHullSVGEmpty(t *testing.T) {
	if svg := HullSVG(nil, nil, 400, 400); svg != "" {
		t.Errorf("expected empty string for no points, got %q", svg)
	}
}

func TestHullSVGNoHull(t *testing.T) {
	svg := HullSVG([]geom.Point{geom.Pt(1, 1)}, nil, 200, 200)
	if strings.Contains(svg, "<polyline") {
		t.Error("unexpected polyline without hull points")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("expected input point circle")
	}
}

func TestCurveSVG(t *testing.T) {
	times := []float64{0, 0.1, 0.2, 0.3}
	values := []float64{0, 0.5, 0.8, 1.0}

	svg := CurveSVG(times, values, 640, 240)
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing curve polyline")
	}
}

func TestCurveSVGDegenerate(t *testing.T) {
	if svg := CurveSVG([]float64{0}, []float64{1}, 640, 240); svg != "" {
		t.Error("expected empty string for single sample")
	}
	if svg := CurveSVG([]float64{0, 1}, []float64{1}, 640, 240); svg != "" {
		t.Error("expected empty string for mismatched lengths")
	}
}
