package geom

import "math"

// Point represents a 2D point or vector. It is a plain value; two points are
// equal iff their coordinates are equal.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LineDistance returns the perpendicular distance from p to the infinite line
// through a and b, computed as |cross(b-a, p-a)| / |b-a|.
//
// The endpoints must be distinct. When a == b both numerator and denominator
// are zero and the result is NaN; no guard is applied and the non-finite
// value propagates to the caller.
func LineDistance(a, b, p Point) float64 {
	ab := b.Sub(a)
	return math.Abs(ab.Cross(p.Sub(a))) / ab.Length()
}
