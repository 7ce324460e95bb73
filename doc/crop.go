package doc

import "github.com/benoitkugler/plotsvg/geom"

// cropEps is the tolerance used to filter curve/crop-line intersections at
// segment extremities and to detect connected pieces on reassembly.
const cropEps = 1e-9

// Crop clips the path to the rectangle. The pieces remaining inside are
// reassembled into a single (possibly compound) path; the result is empty
// when nothing is left.
func (b *BezPath) Crop(r geom.Rect) []*BezPath {
	type seg struct {
		bez    geom.CubicBez
		isLine bool
	}
	var kept []seg

	// walk the path, clipping segment by segment
	var pen, subStart geom.Point
	clipLine := func(a, b geom.Point) {
		if a == b {
			return
		}
		p, q, ok := clipSegment(a, b, r)
		if ok && p != q {
			kept = append(kept, seg{geom.LineBez(p, q), true})
		}
	}
	clipCubic := func(c geom.CubicBez) {
		for _, piece := range cropCubicRect(c, r) {
			kept = append(kept, seg{piece, false})
		}
	}
	for _, o := range b.ops {
		switch o.verb {
		case vMoveTo:
			pen, subStart = o.p1, o.p1
		case vLineTo:
			clipLine(pen, o.p1)
			pen = o.p1
		case vQuadTo:
			clipCubic(geom.QuadBez{P0: pen, P1: o.p1, P2: o.p2}.Raise())
			pen = o.p2
		case vCubicTo:
			clipCubic(geom.CubicBez{P0: pen, P1: o.p1, P2: o.p2, P3: o.p3})
			pen = o.p3
		case vClose:
			clipLine(pen, subStart)
			pen = subStart
		}
	}

	if len(kept) == 0 {
		return nil
	}

	// reassemble: consecutive pieces whose endpoints meet stay in the same
	// subpath, gaps introduce a MoveTo
	out := &BezPath{}
	var cur geom.Point
	started := false
	for _, s := range kept {
		if !started || cur.Distance(s.bez.P0) > cropEps {
			out.MoveTo(s.bez.P0)
			started = true
		}
		if s.isLine {
			out.LineTo(s.bez.P3)
		} else {
			out.CubicTo(s.bez.P1, s.bez.P2, s.bez.P3)
		}
		cur = s.bez.P3
	}
	return []*BezPath{out}
}

// Crop clips the polyline to the rectangle, splitting it wherever a segment
// leaves the rectangle. Single-point polylines are kept when inside.
func (p *Polyline) Crop(r geom.Rect) []*Polyline {
	if len(p.Points) == 1 {
		if r.Contains(p.Points[0]) {
			return []*Polyline{p.Clone()}
		}
		return nil
	}

	var out []*Polyline
	var cur *Polyline
	for i := 0; i+1 < len(p.Points); i++ {
		a, b, ok := clipSegment(p.Points[i], p.Points[i+1], r)
		if !ok {
			cur = nil
			continue
		}
		if cur == nil || cur.Points[len(cur.Points)-1].Distance(a) > cropEps {
			cur = &Polyline{Points: []geom.Point{a}}
			out = append(out, cur)
		}
		if cur.Points[len(cur.Points)-1] != b {
			cur.Points = append(cur.Points, b)
		}
		// the clipped end is interior to the rect only if b was clipped
		if b != p.Points[i+1] {
			cur = nil
		}
	}
	return out
}

// clipSegment clips the segment a-b to the rectangle (Liang-Barsky) and
// reports whether anything remains.
func clipSegment(a, b geom.Point, r geom.Rect) (geom.Point, geom.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	if !clip(-dx, a.X-r.Min.X) ||
		!clip(dx, r.Max.X-a.X) ||
		!clip(-dy, a.Y-r.Min.Y) ||
		!clip(dy, r.Max.Y-a.Y) {
		return geom.Point{}, geom.Point{}, false
	}
	p0 := geom.Pt(a.X+t0*dx, a.Y+t0*dy)
	p1 := geom.Pt(a.X+t1*dx, a.Y+t1*dy)
	return p0, p1, true
}

// cropCubicRect clips a cubic to the rectangle with four successive
// half-plane clips.
func cropCubicRect(c geom.CubicBez, r geom.Rect) []geom.CubicBez {
	pieces := cropCubicX(c, r.Min.X, false)
	pieces = flatMapCubic(pieces, func(c geom.CubicBez) []geom.CubicBez {
		return cropCubicX(c, r.Max.X, true)
	})
	pieces = flatMapCubic(pieces, func(c geom.CubicBez) []geom.CubicBez {
		return cropCubicY(c, r.Min.Y, false)
	})
	pieces = flatMapCubic(pieces, func(c geom.CubicBez) []geom.CubicBez {
		return cropCubicY(c, r.Max.Y, true)
	})
	return pieces
}

func flatMapCubic(in []geom.CubicBez, fn func(geom.CubicBez) []geom.CubicBez) []geom.CubicBez {
	var out []geom.CubicBez
	for _, c := range in {
		out = append(out, fn(c)...)
	}
	return out
}

// cropCubicX clips the curve to a half-plane bounded by the vertical line
// at x, keeping the smaller-x side when keepSmaller is set.
//
// The curve is split at its intersections with the line; the parameter
// ranges whose midpoint lies on the kept side survive, and contiguous
// ranges (a curve tangent to the line) are merged back together.
func cropCubicX(c geom.CubicBez, x float64, keepSmaller bool) []geom.CubicBez {
	const tEps = 1e-7

	// keep the interior intersections, merging near-identical parameters
	// (a double root where the curve is tangent to the line)
	var cuts []float64
	for _, t := range c.SolveX(x) {
		if t <= tEps || t >= 1-tEps {
			continue
		}
		if n := len(cuts); n > 0 && t-cuts[n-1] <= tEps {
			continue
		}
		cuts = append(cuts, t)
	}
	cuts = append(cuts, 1)

	type trange struct{ t0, t1 float64 }
	var keep []trange
	prev := 0.0
	for _, t := range cuts {
		// a range lying exactly on the line is inside both half-planes
		mid := c.Eval((prev + t) / 2).X
		if mid == x || (mid < x) == keepSmaller {
			keep = append(keep, trange{prev, t})
		}
		prev = t
	}

	// merge contiguous ranges
	var merged []trange
	for _, rg := range keep {
		if n := len(merged); n > 0 && merged[n-1].t1 == rg.t0 {
			merged[n-1].t1 = rg.t1
			continue
		}
		merged = append(merged, rg)
	}

	out := make([]geom.CubicBez, 0, len(merged))
	for _, rg := range merged {
		out = append(out, c.Subsegment(rg.t0, rg.t1))
	}
	return out
}

func cropCubicY(c geom.CubicBez, y float64, keepSmaller bool) []geom.CubicBez {
	pieces := cropCubicX(c.Transpose(), y, keepSmaller)
	for i := range pieces {
		pieces[i] = pieces[i].Transpose()
	}
	return pieces
}
