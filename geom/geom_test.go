package geom

import (
	"math"
	"testing"
)

func almostEq(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func almostEqPt(a, b Point, eps float64) bool {
	return almostEq(a.X, b.X, eps) && almostEq(a.Y, b.Y, eps)
}

func TestMatrixCompose(t *testing.T) {
	m := Identity.Translate(10, 20).Scale(2, 3)
	got := m.TransformPoint(Pt(1, 1))
	want := Pt(12, 23)
	if !almostEqPt(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}

	r := Identity.Rotate(math.Pi / 2)
	got = r.TransformPoint(Pt(1, 0))
	if !almostEqPt(got, Pt(0, 1), 1e-12) {
		t.Errorf("rotate: got %v", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Identity.Translate(3, -7).Rotate(0.3).Scale(2, 0.5)
	inv, err := m.Invert()
	if err != nil {
		t.Fatal(err)
	}
	p := Pt(4.2, -1.3)
	back := inv.TransformPoint(m.TransformPoint(p))
	if !almostEqPt(back, p, 1e-9) {
		t.Errorf("round trip: got %v, want %v", back, p)
	}

	if _, err := (Matrix{}).Invert(); err == nil {
		t.Error("expected error for singular matrix")
	}
}

func TestCubicBoundingBox(t *testing.T) {
	// symmetrical S curve: extrema at t=0.5 are not on the control polygon hull
	c := CubicBez{Pt(0, 0), Pt(-5, 1), Pt(5, 2), Pt(0, 3)}
	bb := c.BoundingBox()
	if !almostEq(bb.Min.Y, 0, 1e-12) || !almostEq(bb.Max.Y, 3, 1e-12) {
		t.Errorf("y range: %v", bb)
	}
	// x extrema are strictly inside the control polygon's [-5, 5]
	if bb.Min.X >= 0 || bb.Max.X <= 0 || bb.Min.X < -5 || bb.Max.X > 5 {
		t.Errorf("x range: %v", bb)
	}
	if !almostEq(bb.Min.X, -bb.Max.X, 1e-9) {
		t.Errorf("expected symmetric x range, got %v", bb)
	}
}

func TestSubsegment(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	sub := c.Subsegment(0.25, 0.75)
	if !almostEqPt(sub.P0, c.Eval(0.25), 1e-9) {
		t.Errorf("start: got %v, want %v", sub.P0, c.Eval(0.25))
	}
	if !almostEqPt(sub.P3, c.Eval(0.75), 1e-9) {
		t.Errorf("end: got %v, want %v", sub.P3, c.Eval(0.75))
	}
	if !almostEqPt(sub.Eval(0.5), c.Eval(0.5), 1e-9) {
		t.Errorf("midpoint: got %v, want %v", sub.Eval(0.5), c.Eval(0.5))
	}
}

func TestSolveX(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(-5, 1), Pt(5, 2), Pt(0, 3)}
	ts := c.SolveX(0)
	if len(ts) != 3 {
		t.Fatalf("expected 3 roots, got %v", ts)
	}
	for _, want := range []float64{0, 0.5, 1} {
		found := false
		for _, got := range ts {
			if almostEq(got, want, 1e-6) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing root near %v in %v", want, ts)
		}
	}

	line := LineBez(Pt(0, 0), Pt(10, 10))
	ts = line.SolveX(5)
	if len(ts) < 1 || !almostEq(ts[0], 0.5, 1e-6) {
		t.Errorf("line root: %v", ts)
	}
}

func TestQuadRaise(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(5, 10), Pt(10, 0)}
	c := q.Raise()
	for _, tv := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if !almostEqPt(q.Eval(tv), c.Eval(tv), 1e-9) {
			t.Errorf("t=%v: quad %v != cubic %v", tv, q.Eval(tv), c.Eval(tv))
		}
	}
}

func TestFlattenCubicTolerance(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}

	pts := FlattenCubic(c, 0.1, []Point{c.P0})
	if last := pts[len(pts)-1]; !almostEqPt(last, c.P3, 1e-12) {
		t.Errorf("last point: %v", last)
	}
	// every emitted point lies on the curve within tolerance of the chords;
	// check the midpoints of consecutive output points stay close to the curve
	for i := 0; i+1 < len(pts); i++ {
		mid := pts[i].Lerp(pts[i+1], 0.5)
		best := math.Inf(1)
		for tv := 0.0; tv <= 1.0; tv += 1e-3 {
			if d := c.Eval(tv).Distance(mid); d < best {
				best = d
			}
		}
		if best > 0.2 {
			t.Errorf("chord midpoint %v is %v from curve", mid, best)
		}
	}
}

func TestFlattenCubicMonotone(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	prev := -1
	for _, tol := range []float64{1.0, 0.5, 0.25, 0.1, 0.05, 0.01, 0.001} {
		n := len(FlattenCubic(c, tol, nil))
		if n < prev {
			t.Errorf("tolerance %v: %d points, fewer than %d at looser tolerance", tol, n, prev)
		}
		prev = n
	}
}
