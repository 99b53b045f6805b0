package hull_test

import (
	"math/rand"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pskrzyn/geosim/internal/geom"
	"github.com/pskrzyn/geosim/internal/hull"
)

// randomPoints returns n points with pairwise distinct x coordinates in a
// seeded shuffle, so every run of the suite sees the same input.
func randomPoints(n int, seed int64) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = geom.Pt(float64(i)*0.7, rng.Float64()*20-10)
	}
	rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

var _ = Describe("Compute", func() {
	It("returns an empty result for empty input", func() {
		Expect(hull.Compute(nil)).To(BeEmpty())
	})

	It("returns an empty result for a single point", func() {
		Expect(hull.Compute([]geom.Point{geom.Pt(1, 1)})).To(BeEmpty())
	})

	It("emits exactly one point for a two-point input", func() {
		got := hull.Compute([]geom.Point{geom.Pt(9, 9), geom.Pt(-1, 4)})
		Expect(got).To(HaveLen(1))
		Expect(got[0]).To(Equal(geom.Pt(-1, 4)))
	})

	It("only emits points that exist in the input", func() {
		input := randomPoints(40, 7)
		seen := map[geom.Point]bool{}
		for _, p := range input {
			seen[p] = true
		}

		for _, p := range hull.Compute(input) {
			Expect(seen[p]).To(BeTrue(), "point %v fabricated", p)
		}
	})

	It("emits n-1 points for n points with distinct x", func() {
		input := randomPoints(25, 3)
		Expect(hull.Compute(input)).To(HaveLen(24))
	})

	It("emits the successive x-minima in ascending order", func() {
		// With distinct x coordinates, each call consumes the range minimum
		// and recurses on the remainder, so the output is the input sorted
		// by x with the largest-x point left over.
		input := randomPoints(30, 11)

		want := append([]geom.Point(nil), input...)
		sort.Slice(want, func(i, j int) bool { return want[i].X < want[j].X })
		want = want[:len(want)-1]

		Expect(hull.Compute(input)).To(Equal(want))
	})

	It("is deterministic across repeated runs", func() {
		input := randomPoints(50, 99)
		first := hull.Compute(append([]geom.Point(nil), input...))
		second := hull.Compute(append([]geom.Point(nil), input...))
		Expect(first).To(Equal(second))
	})

	It("survives fully collinear input", func() {
		input := []geom.Point{
			geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0),
		}
		Expect(hull.Compute(input)).To(Equal([]geom.Point{
			geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0),
		}))
	})
})
