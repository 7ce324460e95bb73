package doc

import (
	"github.com/benoitkugler/plotsvg/geom"
	"github.com/benoitkugler/plotsvg/internal/parallel"
)

// DefaultTolerance is the flattening tolerance used when callers have no
// better value, in document units.
const DefaultTolerance = 0.1

// flattenedSuffix is appended to the document source on flattening.
const flattenedSuffix = " (flattened)"

// Flatten approximates the path with polylines, one per subpath. Closed
// subpaths yield closed polylines (first point == last point). Zero-length
// segments emit no points.
func (b *BezPath) Flatten(tolerance float64) []*Polyline {
	var out []*Polyline
	var cur *Polyline

	appendPt := func(p geom.Point) {
		if cur == nil {
			cur = &Polyline{}
			out = append(out, cur)
		}
		if n := len(cur.Points); n > 0 && cur.Points[n-1] == p {
			return
		}
		cur.Points = append(cur.Points, p)
	}

	var pen, subStart geom.Point
	for _, o := range b.ops {
		switch o.verb {
		case vMoveTo:
			cur = &Polyline{Points: []geom.Point{o.p1}}
			out = append(out, cur)
			pen, subStart = o.p1, o.p1
		case vLineTo:
			appendPt(o.p1)
			pen = o.p1
		case vQuadTo:
			c := geom.QuadBez{P0: pen, P1: o.p1, P2: o.p2}.Raise()
			for _, p := range geom.FlattenCubic(c, tolerance, nil) {
				appendPt(p)
			}
			pen = o.p2
		case vCubicTo:
			c := geom.CubicBez{P0: pen, P1: o.p1, P2: o.p2, P3: o.p3}
			for _, p := range geom.FlattenCubic(c, tolerance, nil) {
				appendPt(p)
			}
			pen = o.p3
		case vClose:
			if cur != nil && len(cur.Points) >= 2 {
				cur.Close()
			}
			pen = subStart
		}
	}
	return out
}

// FlattenPath flattens a curve path into one flattened path per subpath,
// sharing the metadata copy-on-write.
func FlattenPath(p *Path[*BezPath], tolerance float64) []*Path[*Polyline] {
	lines := p.Data.Flatten(tolerance)
	out := make([]*Path[*Polyline], 0, len(lines))
	for _, pl := range lines {
		out = append(out, &Path[*Polyline]{Data: pl, Meta: p.Meta.Clone()})
	}
	return out
}

// FlattenLayer flattens every path of the layer.
func FlattenLayer(l *Layer[*BezPath], tolerance float64) *Layer[*Polyline] {
	out := &Layer[*Polyline]{Name: l.Name, Defaults: l.Defaults.Clone()}
	for _, p := range l.Paths {
		out.Paths = append(out.Paths, FlattenPath(p, tolerance)...)
	}
	return out
}

// FlattenDocument flattens every layer, concurrently. The document source
// is marked as flattened.
func FlattenDocument(d *Document[*BezPath], tolerance float64) *Document[*Polyline] {
	out := NewDocument[*Polyline]()
	if d.PageSize != nil {
		ps := *d.PageSize
		out.PageSize = &ps
	}
	if d.Source != "" {
		out.Source = d.Source + flattenedSuffix
	}
	out.Defaults = d.Defaults.Clone()

	ids := d.LayerIDs()
	flat := make([]*Layer[*Polyline], len(ids))
	parallel.ForEach(len(ids), func(i int) {
		flat[i] = FlattenLayer(d.layers[ids[i]], tolerance)
	})
	for i, id := range ids {
		out.layers[id] = flat[i]
	}
	return out
}
