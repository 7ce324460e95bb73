package doc

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/plotsvg/geom"
)

type verb uint8

const (
	vMoveTo verb = iota
	vLineTo
	vQuadTo
	vCubicTo
	vClose
)

// op is one path command. P1 holds the target of MoveTo and LineTo; QuadTo
// uses P1, P2; CubicTo uses all three.
type op struct {
	verb       verb
	p1, p2, p3 geom.Point
}

// BezPath is the curve representation of a path: a sequence of MoveTo,
// LineTo, QuadTo, CubicTo and Close commands. It may contain several
// subpaths.
type BezPath struct {
	ops []op
}

func (b *BezPath) MoveTo(p geom.Point) { b.ops = append(b.ops, op{verb: vMoveTo, p1: p}) }

func (b *BezPath) LineTo(p geom.Point) { b.ops = append(b.ops, op{verb: vLineTo, p1: p}) }

func (b *BezPath) QuadTo(p1, p geom.Point) {
	b.ops = append(b.ops, op{verb: vQuadTo, p1: p1, p2: p})
}

func (b *BezPath) CubicTo(p1, p2, p geom.Point) {
	b.ops = append(b.ops, op{verb: vCubicTo, p1: p1, p2: p2, p3: p})
}

func (b *BezPath) Close() { b.ops = append(b.ops, op{verb: vClose}) }

// Line returns a path holding the single segment a-b.
func Line(a, b geom.Point) *BezPath {
	p := &BezPath{}
	p.MoveTo(a)
	p.LineTo(b)
	return p
}

// Circle returns a circle of radius r centered on c, approximated with four
// cubic segments.
func Circle(c geom.Point, r float64) *BezPath {
	k := geom.CircleK * r
	p := &BezPath{}
	p.MoveTo(geom.Pt(c.X+r, c.Y))
	p.CubicTo(geom.Pt(c.X+r, c.Y+k), geom.Pt(c.X+k, c.Y+r), geom.Pt(c.X, c.Y+r))
	p.CubicTo(geom.Pt(c.X-k, c.Y+r), geom.Pt(c.X-r, c.Y+k), geom.Pt(c.X-r, c.Y))
	p.CubicTo(geom.Pt(c.X-r, c.Y-k), geom.Pt(c.X-k, c.Y-r), geom.Pt(c.X, c.Y-r))
	p.CubicTo(geom.Pt(c.X+k, c.Y-r), geom.Pt(c.X+r, c.Y-k), geom.Pt(c.X+r, c.Y))
	p.Close()
	return p
}

func (b *BezPath) Len() int { return len(b.ops) }

func (b *BezPath) Clone() *BezPath {
	cp := make([]op, len(b.ops))
	copy(cp, b.ops)
	return &BezPath{ops: cp}
}

// Start returns the first point of the path.
func (b *BezPath) Start() (geom.Point, bool) {
	if len(b.ops) == 0 {
		return geom.Point{}, false
	}
	return b.ops[0].p1, true
}

// End returns the pen position after the last command.
func (b *BezPath) End() (geom.Point, bool) {
	if len(b.ops) == 0 {
		return geom.Point{}, false
	}
	var cur, subStart geom.Point
	for _, o := range b.ops {
		switch o.verb {
		case vMoveTo:
			cur, subStart = o.p1, o.p1
		case vLineTo:
			cur = o.p1
		case vQuadTo:
			cur = o.p2
		case vCubicTo:
			cur = o.p3
		case vClose:
			cur = subStart
		}
	}
	return cur, true
}

func (b *BezPath) Transform(m geom.Matrix) {
	for i := range b.ops {
		b.ops[i].p1 = m.TransformPoint(b.ops[i].p1)
		b.ops[i].p2 = m.TransformPoint(b.ops[i].p2)
		b.ops[i].p3 = m.TransformPoint(b.ops[i].p3)
	}
}

// Bounds returns the exact bounding box, or false for an empty path.
func (b *BezPath) Bounds() (geom.Rect, bool) {
	first := true
	var bb geom.Rect
	add := func(r geom.Rect) {
		if first {
			bb, first = r, false
		} else {
			bb = bb.Union(r)
		}
	}
	var cur, subStart geom.Point
	for _, o := range b.ops {
		switch o.verb {
		case vMoveTo:
			cur, subStart = o.p1, o.p1
			add(geom.RectFromPoints(cur, cur))
		case vLineTo:
			add(geom.RectFromPoints(cur, o.p1))
			cur = o.p1
		case vQuadTo:
			add(geom.QuadBez{P0: cur, P1: o.p1, P2: o.p2}.Raise().BoundingBox())
			cur = o.p2
		case vCubicTo:
			add(geom.CubicBez{P0: cur, P1: o.p1, P2: o.p2, P3: o.p3}.BoundingBox())
			cur = o.p3
		case vClose:
			add(geom.RectFromPoints(cur, subStart))
			cur = subStart
		}
	}
	return bb, !first
}

// Subpaths splits the path at each MoveTo. Close commands are kept within
// their subpath.
func (b *BezPath) Subpaths() []*BezPath {
	var out []*BezPath
	var cur *BezPath
	for _, o := range b.ops {
		if o.verb == vMoveTo || cur == nil {
			cur = &BezPath{}
			out = append(out, cur)
		}
		cur.ops = append(cur.ops, o)
	}
	return out
}

// Append concatenates other onto b, keeping other's subpath structure.
func (b *BezPath) Append(other *BezPath) {
	b.ops = append(b.ops, other.ops...)
}

// Join concatenates other onto b as a continuation of the current subpath:
// other's leading MoveTo becomes a LineTo (dropped when it coincides with
// b's end point). A Close in the grafted subpath is materialized as an
// explicit line back to other's own start, since a Close command would
// otherwise snap to the chain's subpath start. Later subpaths of other are
// kept as is.
func (b *BezPath) Join(other *BezPath) {
	if len(other.ops) == 0 {
		return
	}
	if len(b.ops) == 0 {
		b.ops = append(b.ops, other.ops...)
		return
	}
	end, _ := b.End()
	grafted := true // inside other's first subpath, merged into b's
	var subStart geom.Point
	for i, o := range other.ops {
		switch o.verb {
		case vMoveTo:
			if i == 0 {
				subStart = o.p1
				if o.p1 == end {
					continue
				}
				o.verb = vLineTo
			} else {
				grafted = false
			}
		case vClose:
			if grafted {
				o = op{verb: vLineTo, p1: subStart}
			}
		}
		b.ops = append(b.ops, o)
	}
}

// Reverse reverses the path direction: the start point becomes the end
// point. Subpath order is reversed as well, and each subpath is walked
// backwards. Closed subpaths stay closed.
func (b *BezPath) Reverse() {
	subs := b.Subpaths()
	var out []op
	for i := len(subs) - 1; i >= 0; i-- {
		out = append(out, reverseSubpath(subs[i].ops)...)
	}
	b.ops = out
}

func reverseSubpath(ops []op) []op {
	if len(ops) == 0 {
		return nil
	}
	// materialize the segment list with explicit points
	type seg struct {
		verb   verb
		points [4]geom.Point // start, controls, end
	}
	var segs []seg
	var cur, subStart geom.Point
	closed := false
	for _, o := range ops {
		switch o.verb {
		case vMoveTo:
			cur, subStart = o.p1, o.p1
		case vLineTo:
			segs = append(segs, seg{vLineTo, [4]geom.Point{cur, {}, {}, o.p1}})
			cur = o.p1
		case vQuadTo:
			segs = append(segs, seg{vQuadTo, [4]geom.Point{cur, o.p1, {}, o.p2}})
			cur = o.p2
		case vCubicTo:
			segs = append(segs, seg{vCubicTo, [4]geom.Point{cur, o.p1, o.p2, o.p3}})
			cur = o.p3
		case vClose:
			if cur != subStart {
				segs = append(segs, seg{vLineTo, [4]geom.Point{cur, {}, {}, subStart}})
			}
			cur = subStart
			closed = true
		}
	}

	start := subStart
	if len(segs) > 0 {
		start = segs[len(segs)-1].points[3]
	}
	out := []op{{verb: vMoveTo, p1: start}}
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		switch s.verb {
		case vLineTo:
			out = append(out, op{verb: vLineTo, p1: s.points[0]})
		case vQuadTo:
			out = append(out, op{verb: vQuadTo, p1: s.points[1], p2: s.points[0]})
		case vCubicTo:
			out = append(out, op{verb: vCubicTo, p1: s.points[2], p2: s.points[1], p3: s.points[0]})
		}
	}
	if closed {
		out = append(out, op{verb: vClose})
	}
	return out
}

// ToSVGPath serializes the path as an SVG "d" attribute value.
func (b *BezPath) ToSVGPath() string {
	var sb strings.Builder
	for i, o := range b.ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch o.verb {
		case vMoveTo:
			sb.WriteByte('M')
			writeCoord(&sb, o.p1)
		case vLineTo:
			sb.WriteByte('L')
			writeCoord(&sb, o.p1)
		case vQuadTo:
			sb.WriteByte('Q')
			writeCoord(&sb, o.p1)
			sb.WriteByte(' ')
			writeCoord(&sb, o.p2)
		case vCubicTo:
			sb.WriteByte('C')
			writeCoord(&sb, o.p1)
			sb.WriteByte(' ')
			writeCoord(&sb, o.p2)
			sb.WriteByte(' ')
			writeCoord(&sb, o.p3)
		case vClose:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func writeCoord(sb *strings.Builder, p geom.Point) {
	sb.WriteString(fmtFloat(p.X))
	sb.WriteByte(',')
	sb.WriteString(fmtFloat(p.Y))
}

// fmtFloat formats a coordinate with 6 decimals, trimming trailing zeros.
func fmtFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
