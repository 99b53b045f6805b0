package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestPointArithmetic(t *testing.T) {
	a := Pt(1, 2)
	b := Pt(3, -1)

	assert.Equal(t, Pt(4, 1), a.Add(b))
	assert.Equal(t, Pt(-2, 3), a.Sub(b))
	assert.InDelta(t, 1.0, a.Dot(b), epsilon)
	assert.InDelta(t, -7.0, a.Cross(b), epsilon)
	assert.InDelta(t, math.Sqrt(5), a.Length(), epsilon)
}

func TestCrossAntisymmetry(t *testing.T) {
	a := Pt(2.5, -1.5)
	b := Pt(0.5, 4.0)
	assert.InDelta(t, -b.Cross(a), a.Cross(b), epsilon)
	assert.InDelta(t, 0.0, a.Cross(a), epsilon)
}

func TestLineDistance(t *testing.T) {
	tests := []struct {
		name    string
		a, b, p Point
		want    float64
	}{
		{"point above horizontal line", Pt(0, 0), Pt(4, 0), Pt(2, 3), 3},
		{"point below horizontal line", Pt(0, 0), Pt(4, 0), Pt(1, -2), 2},
		{"point on the line", Pt(0, 0), Pt(4, 4), Pt(2, 2), 0},
		{"point beyond segment end", Pt(0, 0), Pt(1, 0), Pt(10, 5), 5},
		{"vertical line", Pt(1, 0), Pt(1, 9), Pt(4, 3), 3},
		{"diagonal line", Pt(0, 0), Pt(3, 4), Pt(3, 0), 2.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LineDistance(tt.a, tt.b, tt.p), epsilon)
		})
	}
}

func TestLineDistanceDegenerate(t *testing.T) {
	a := Pt(1, 1)

	// Coincident endpoints, p elsewhere: 0/0 -> NaN.
	assert.True(t, math.IsNaN(LineDistance(a, a, Pt(5, 5))))

	// Coincident endpoints, p == a: still 0/0 -> NaN.
	assert.True(t, math.IsNaN(LineDistance(a, a, a)))
}
