// Package hull builds 2D convex hulls with a QuickHull-style
// divide-and-conquer pass over a mutable point slice.
//
// The construction deviates from textbook QuickHull in two ways that are part
// of its contract: the pivot of every recursive call is the minimum-x point of
// the current range (not the farthest point from a dividing line), and the
// farthest-point search scans the whole slice rather than the current range.
// The farthest-point result feeds the optional [Trace] only; the recursion
// always splits at the pivot's resting index. Output order and content follow
// directly from those rules, so identical input always produces an identical
// result sequence.
package hull

import "github.com/pskrzyn/geosim/internal/geom"

// PivotStep describes one resolved call of the recursive construction.
type PivotStep struct {
	// Pivot is the point appended to the result at this step.
	Pivot geom.Point
	// Left and Right bound the index range the step operated on.
	Left, Right int
	// Split is the pivot's resting index; the sub-calls cover
	// [Left, Split-1] and [Split+1, Right].
	Split int
	// Farthest is the index of the point with the greatest perpendicular
	// distance from the line through the range start and the pivot, or -1
	// when no finite distance was found. It never influences the split.
	Farthest int
}

// Trace receives one callback per pivot as the construction descends.
type Trace interface {
	OnPivot(step PivotStep)
}

// Builder computes hulls. The zero value is ready to use; set Trace to
// observe individual steps.
type Builder struct {
	Trace Trace
}

// Compute returns the hull point sequence for pts.
//
// Compute permutes pts in place; callers that need the original order must
// retain a copy. An empty or single-point input yields an empty result.
// Degenerate inputs (duplicate or collinear points) are not rejected and may
// produce a result that repeats coordinates.
func (b *Builder) Compute(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	b.descend(pts, 0, len(pts)-1, &out)
	return out
}

// Compute is shorthand for computing a hull without a trace.
// It shares Builder.Compute's contract, including the in-place permutation
// of pts.
func Compute(pts []geom.Point) []geom.Point {
	var b Builder
	return b.Compute(pts)
}

// descend resolves the range [left, right]: it moves the minimum-x point into
// its partition position, appends it to out, then recurses on the two
// remaining sub-ranges. Partitioning never moves a point across the split, so
// every sub-range keeps the side it was assigned by its ancestors.
func (b *Builder) descend(pts []geom.Point, left, right int, out *[]geom.Point) {
	if len(pts) == 0 || left >= right {
		return
	}

	// Referential point: first-seen minimum x in the range.
	ref := left
	for i := left; i <= right; i++ {
		if pts[i].X < pts[ref].X {
			ref = i
		}
	}
	pts[ref], pts[right] = pts[right], pts[ref]

	// Lomuto partition on x < pivot.x. The pivot sits at right for the
	// duration of the scan.
	split := left
	for i := left; i < right; i++ {
		if pts[i].X < pts[right].X {
			pts[i], pts[split] = pts[split], pts[i]
			split++
		}
	}
	pts[right], pts[split] = pts[split], pts[right]

	*out = append(*out, pts[split])

	// Farthest point from the line through the range start and the pivot.
	// Diagnostics only: the split below always follows the pivot's resting
	// index, and the scan deliberately covers the whole slice.
	far := farthestFrom(pts, left, split)
	if b.Trace != nil {
		b.Trace.OnPivot(PivotStep{
			Pivot:    pts[split],
			Left:     left,
			Right:    right,
			Split:    split,
			Farthest: far,
		})
	}

	b.descend(pts, left, split-1, out)
	b.descend(pts, split+1, right, out)
}

// farthestFrom returns the index of the point with the maximum perpendicular
// distance from the line through pts[a] and pts[b], scanning all of pts.
// Ties keep the first-seen index. Returns -1 when every distance is NaN,
// which is the case whenever pts[a] == pts[b].
func farthestFrom(pts []geom.Point, a, b int) int {
	maxDist := -1.0
	maxIdx := -1
	for i := range pts {
		if d := geom.LineDistance(pts[a], pts[b], pts[i]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	return maxIdx
}
