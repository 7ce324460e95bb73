package geom

import "math"

// maxFlattenDepth bounds the recursion for degenerate curves.
const maxFlattenDepth = 28

// FlattenCubic appends a polyline approximation of c to out and returns the
// extended slice. The starting point c.P0 is not appended; the final point
// c.P3 always is. A segment is considered flat when both control points are
// within tolerance of the chord.
func FlattenCubic(c CubicBez, tolerance float64, out []Point) []Point {
	return flattenCubicRec(c, tolerance, out, 0)
}

func flattenCubicRec(c CubicBez, tolerance float64, out []Point, depth int) []Point {
	d1 := distanceToLine(c.P1, c.P0, c.P3)
	d2 := distanceToLine(c.P2, c.P0, c.P3)
	if math.Max(d1, d2) <= tolerance || depth >= maxFlattenDepth {
		return append(out, c.P3)
	}
	left, right := c.Subdivide()
	out = flattenCubicRec(left, tolerance, out, depth+1)
	return flattenCubicRec(right, tolerance, out, depth+1)
}

// distanceToLine returns the distance from p to the infinite line through a
// and b, or the distance to a when the line is degenerate.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l := ab.Length()
	if l < 1e-12 {
		return p.Distance(a)
	}
	return math.Abs(ab.Cross(p.Sub(a))) / l
}
