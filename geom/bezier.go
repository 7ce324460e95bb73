package geom

import (
	"math"
	"sort"
)

// CircleK is the control-point offset ratio approximating a quarter circle
// with a single cubic segment.
const CircleK = 0.5522847498307936

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0, P1, P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	x := mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X
	y := mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y
	return Point{x, y}
}

// Raise converts the quadratic to an equivalent cubic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// LineBez returns the cubic equivalent of the segment a-b.
func LineBez(a, b Point) CubicBez {
	return CubicBez{a, a.Lerp(b, 1.0/3.0), a.Lerp(b, 2.0/3.0), b}
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return Point{
		a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.SubdivideAt(0.5)
}

// SubdivideAt splits the curve at parameter t.
func (c CubicBez) SubdivideAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// Subsegment returns the curve restricted to [t0, t1].
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	if t0 > 0 {
		_, c = c.SubdivideAt(t0)
	}
	if t1 < 1 {
		t := (t1 - t0) / (1 - t0)
		c, _ = c.SubdivideAt(t)
	}
	return c
}

// Transpose swaps the x and y axes.
func (c CubicBez) Transpose() CubicBez {
	return CubicBez{
		Point{c.P0.Y, c.P0.X},
		Point{c.P1.Y, c.P1.X},
		Point{c.P2.Y, c.P2.X},
		Point{c.P3.Y, c.P3.X},
	}
}

// BoundingBox returns the exact bounding box, computed from the extrema of
// each coordinate polynomial.
func (c CubicBez) BoundingBox() Rect {
	r := RectFromPoints(c.P0, c.P3)
	for _, t := range extrema(c.P0.X, c.P1.X, c.P2.X, c.P3.X) {
		r = r.UnionPoint(c.Eval(t))
	}
	for _, t := range extrema(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y) {
		r = r.UnionPoint(c.Eval(t))
	}
	return r
}

// extrema returns the parameters in (0, 1) where the derivative of the cubic
// polynomial through p0..p3 vanishes.
func extrema(p0, p1, p2, p3 float64) []float64 {
	// derivative coefficients: a*t^2 + b*t + c
	a := 3 * (p3 - 3*p2 + 3*p1 - p0)
	b := 6 * (p2 - 2*p1 + p0)
	c := 3 * (p1 - p0)

	var out []float64
	for _, t := range solveQuadratic(a, b, c) {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// SolveX returns the parameters t in [0, 1] where the x coordinate of the
// curve equals x, in increasing order.
func (c CubicBez) SolveX(x float64) []float64 {
	a := -c.P0.X + 3*c.P1.X - 3*c.P2.X + c.P3.X
	b := 3*c.P0.X - 6*c.P1.X + 3*c.P2.X
	cc := -3*c.P0.X + 3*c.P1.X
	d := c.P0.X - x

	var out []float64
	for _, t := range solveCubic(a, b, cc, d) {
		if t >= -1e-9 && t <= 1+1e-9 {
			out = append(out, math.Max(0, math.Min(1, t)))
		}
	}
	sort.Float64s(out)
	return out
}

func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	// numerically stable form
	var q float64
	if b >= 0 {
		q = -(b + sq) / 2
	} else {
		q = -(b - sq) / 2
	}
	roots := []float64{q / a}
	if q != 0 {
		roots = append(roots, c/q)
	} else if disc > 0 {
		roots = append(roots, -b/a-q/a)
	}
	return roots
}

// solveCubic returns the real roots of a*t^3 + b*t^2 + c*t + d.
func solveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < 1e-12 {
		return solveQuadratic(b, c, d)
	}
	b /= a
	c /= a
	d /= a

	// depressed cubic u^3 + p*u + q, with t = u - b/3
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3

	disc := q*q/4 + p*p*p/27
	switch {
	case disc > 1e-14:
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2+sq) + math.Cbrt(-q/2-sq)
		return []float64{u + shift}
	case disc < -1e-14:
		// three distinct real roots
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(math.Max(-1, math.Min(1, -q/(2*r))))
		m := 2 * math.Sqrt(-p/3)
		return []float64{
			m*math.Cos(phi/3) + shift,
			m*math.Cos((phi+2*math.Pi)/3) + shift,
			m*math.Cos((phi+4*math.Pi)/3) + shift,
		}
	default:
		if math.Abs(q) < 1e-14 && math.Abs(p) < 1e-14 {
			return []float64{shift}
		}
		u := math.Cbrt(-q / 2)
		return []float64{2*u + shift, -u + shift}
	}
}
