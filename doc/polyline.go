package doc

import (
	"strings"

	"github.com/benoitkugler/plotsvg/geom"
)

// Polyline is the flattened representation of a path: a sequence of points
// joined by straight segments. It is closed when the first and last points
// are equal.
type Polyline struct {
	Points []geom.Point
}

// NewPolyline builds a polyline from the given points.
func NewPolyline(points ...geom.Point) *Polyline {
	return &Polyline{Points: points}
}

// Close appends the first point when the polyline is not already closed.
// Empty and single-point polylines are left untouched.
func (p *Polyline) Close() {
	if len(p.Points) < 2 || p.Points[0] == p.Points[len(p.Points)-1] {
		return
	}
	p.Points = append(p.Points, p.Points[0])
}

// IsClosed reports whether the first and last points coincide.
func (p *Polyline) IsClosed() bool {
	return len(p.Points) >= 2 && p.Points[0] == p.Points[len(p.Points)-1]
}

// IsPoint reports whether the polyline is a single point (a pen dot).
func (p *Polyline) IsPoint() bool { return len(p.Points) == 1 }

func (p *Polyline) Len() int { return len(p.Points) }

func (p *Polyline) Clone() *Polyline {
	cp := make([]geom.Point, len(p.Points))
	copy(cp, p.Points)
	return &Polyline{Points: cp}
}

func (p *Polyline) Start() (geom.Point, bool) {
	if len(p.Points) == 0 {
		return geom.Point{}, false
	}
	return p.Points[0], true
}

func (p *Polyline) End() (geom.Point, bool) {
	if len(p.Points) == 0 {
		return geom.Point{}, false
	}
	return p.Points[len(p.Points)-1], true
}

func (p *Polyline) Transform(m geom.Matrix) {
	for i, pt := range p.Points {
		p.Points[i] = m.TransformPoint(pt)
	}
}

func (p *Polyline) Reverse() {
	for i, j := 0, len(p.Points)-1; i < j; i, j = i+1, j-1 {
		p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
	}
}

func (p *Polyline) Bounds() (geom.Rect, bool) {
	if len(p.Points) == 0 {
		return geom.Rect{}, false
	}
	bb := geom.RectFromPoints(p.Points[0], p.Points[0])
	for _, pt := range p.Points[1:] {
		bb = bb.UnionPoint(pt)
	}
	return bb, true
}

// Join concatenates other onto p, dropping the junction point when both
// polylines share it exactly.
func (p *Polyline) Join(other *Polyline) {
	pts := other.Points
	if len(pts) > 0 && len(p.Points) > 0 && pts[0] == p.Points[len(p.Points)-1] {
		pts = pts[1:]
	}
	p.Points = append(p.Points, pts...)
}

// Length returns the total pen-down length.
func (p *Polyline) Length() float64 {
	var total float64
	for i := 0; i+1 < len(p.Points); i++ {
		total += p.Points[i].Distance(p.Points[i+1])
	}
	return total
}

// ToSVGPath serializes the polyline as an SVG "d" attribute value, with a
// closing Z when the polyline is closed.
func (p *Polyline) ToSVGPath() string {
	if len(p.Points) == 0 {
		return ""
	}
	var sb strings.Builder
	closed := p.IsClosed()
	last := len(p.Points) - 1
	for i, pt := range p.Points {
		switch {
		case i == 0:
			sb.WriteByte('M')
			writeCoord(&sb, pt)
		case i == last && closed:
			sb.WriteString(" Z")
		default:
			sb.WriteString(" L")
			writeCoord(&sb, pt)
		}
	}
	return sb.String()
}
