package doc

import "github.com/benoitkugler/plotsvg/geom"

// Layer is an ordered list of paths plus the layer-level metadata, which
// acts as the default for paths whose own fields are unset.
type Layer[D PathData[D]] struct {
	Paths []*Path[D]

	// Name is the layer label, written to (and read from) the Inkscape
	// layer attributes. Empty means unset.
	Name string

	// Defaults holds the layer-level metadata fields.
	Defaults Metadata
}

// Push appends a new path wrapping data and returns it.
func (l *Layer[D]) Push(data D) *Path[D] {
	p := NewPath(data)
	l.Paths = append(l.Paths, p)
	return p
}

// Bounds returns the union of the path bounds, or false when the layer has
// no geometry.
func (l *Layer[D]) Bounds() (geom.Rect, bool) {
	var bb geom.Rect
	found := false
	for _, p := range l.Paths {
		if r, ok := p.Bounds(); ok {
			if found {
				bb = bb.Union(r)
			} else {
				bb, found = r, true
			}
		}
	}
	return bb, found
}

func (l *Layer[D]) Transform(m geom.Matrix) {
	for _, p := range l.Paths {
		p.Transform(m)
	}
}

// Crop clips every path to the rectangle. Paths whose geometry is split by
// the rectangle are replaced by their pieces; paths fully outside are
// removed.
func (l *Layer[D]) Crop(r geom.Rect) {
	var out []*Path[D]
	for _, p := range l.Paths {
		for _, piece := range p.Data.Crop(r) {
			out = append(out, &Path[D]{Data: piece, Meta: p.Meta.Clone()})
		}
	}
	l.Paths = out
}

// SetStrokeWidth sets the stroke width on the layer defaults and clears any
// per-path override, so every path in the layer resolves to w.
func (l *Layer[D]) SetStrokeWidth(w float64) {
	l.Defaults.SetStrokeWidth(w)
	for _, p := range l.Paths {
		p.Meta.ClearStrokeWidth()
	}
}

// PromoteCommonMetadata moves the color and stroke width to the layer
// defaults when every path of the layer sets the same value, and clears the
// now redundant per-path fields.
func (l *Layer[D]) PromoteCommonMetadata() {
	if len(l.Paths) == 0 {
		return
	}

	color, colorOK := l.Paths[0].Meta.Color()
	width, widthOK := l.Paths[0].Meta.StrokeWidth()
	for _, p := range l.Paths[1:] {
		if c, ok := p.Meta.Color(); !ok || c != color {
			colorOK = false
		}
		if w, ok := p.Meta.StrokeWidth(); !ok || w != width {
			widthOK = false
		}
	}

	if colorOK {
		l.Defaults.SetColor(color)
		for _, p := range l.Paths {
			p.Meta.ClearColor()
		}
	}
	if widthOK {
		l.Defaults.SetStrokeWidth(width)
		for _, p := range l.Paths {
			p.Meta.ClearStrokeWidth()
		}
	}
}

// ResolveStyle resolves the drawing attributes of p within the layer only
// (no document scope). Most callers want Document.ResolveStyle instead.
func (l *Layer[D]) ResolveStyle(p *Path[D]) Style {
	return resolveStyle(&p.Meta, &l.Defaults)
}

// ExplodeLayer splits every compound path of the layer into one path per
// subpath. Metadata is shared copy-on-write; path order is preserved.
func ExplodeLayer(l *Layer[*BezPath]) {
	var out []*Path[*BezPath]
	for _, p := range l.Paths {
		subs := p.Data.Subpaths()
		if len(subs) <= 1 {
			out = append(out, p)
			continue
		}
		for _, sub := range subs {
			out = append(out, &Path[*BezPath]{Data: sub, Meta: p.Meta.Clone()})
		}
	}
	l.Paths = out
}
