package doc

import (
	"sort"

	"github.com/benoitkugler/plotsvg/geom"
)

// LayerID identifies a layer within a document. IDs are arbitrary
// non-negative integers; iteration is always in ascending ID order.
type LayerID int

// PageSize is the physical page, in document units.
type PageSize struct {
	W, H float64
}

// Document is a set of layers keyed by ID, plus the document metadata.
// The zero value of the layer map is handled lazily; use NewDocument.
type Document[D PathData[D]] struct {
	layers map[LayerID]*Layer[D]

	// PageSize is the physical page, or nil when unknown.
	PageSize *PageSize

	// Source describes where the content comes from (usually a file path).
	Source string

	// Defaults holds document-level metadata fields, the last scope before
	// the built-in defaults.
	Defaults Metadata
}

// NewDocument returns an empty document.
func NewDocument[D PathData[D]]() *Document[D] {
	return &Document[D]{layers: map[LayerID]*Layer[D]{}}
}

// Layer returns the layer with the given ID, or nil.
func (d *Document[D]) Layer(id LayerID) *Layer[D] {
	return d.layers[id]
}

// EnsureLayer returns the layer with the given ID, creating it empty when
// missing.
func (d *Document[D]) EnsureLayer(id LayerID) *Layer[D] {
	if d.layers == nil {
		d.layers = map[LayerID]*Layer[D]{}
	}
	l, ok := d.layers[id]
	if !ok {
		l = &Layer[D]{}
		d.layers[id] = l
	}
	return l
}

// RemoveLayer deletes the layer with the given ID, if present.
func (d *Document[D]) RemoveLayer(id LayerID) {
	delete(d.layers, id)
}

// LayerIDs returns the layer IDs in ascending order.
func (d *Document[D]) LayerIDs() []LayerID {
	ids := make([]LayerID, 0, len(d.layers))
	for id := range d.layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ForEachLayer calls fn for each layer in ascending ID order.
func (d *Document[D]) ForEachLayer(fn func(LayerID, *Layer[D])) {
	for _, id := range d.LayerIDs() {
		fn(id, d.layers[id])
	}
}

// PathCount returns the total number of paths across all layers.
func (d *Document[D]) PathCount() int {
	n := 0
	for _, l := range d.layers {
		n += len(l.Paths)
	}
	return n
}

// Bounds returns the union of the layer bounds, or false when the document
// has no geometry.
func (d *Document[D]) Bounds() (geom.Rect, bool) {
	var bb geom.Rect
	found := false
	for _, l := range d.layers {
		if r, ok := l.Bounds(); ok {
			if found {
				bb = bb.Union(r)
			} else {
				bb, found = r, true
			}
		}
	}
	return bb, found
}

// ResolveStyle resolves the drawing attributes of a path belonging to the
// given layer, falling through path, layer and document scopes.
func (d *Document[D]) ResolveStyle(id LayerID, p *Path[D]) Style {
	l := d.layers[id]
	if l == nil {
		return resolveStyle(&p.Meta, &d.Defaults)
	}
	return resolveStyle(&p.Meta, &l.Defaults, &d.Defaults)
}

// Transform applies m to every path of the document.
func (d *Document[D]) Transform(m geom.Matrix) {
	for _, l := range d.layers {
		l.Transform(m)
	}
}

func (d *Document[D]) Translate(dx, dy float64) {
	d.Transform(geom.Identity.Translate(dx, dy))
}

// Rotate rotates the content by rad radians about the origin.
func (d *Document[D]) Rotate(rad float64) {
	d.Transform(geom.Identity.Rotate(rad))
}

// Scale scales the content uniformly about the origin.
func (d *Document[D]) Scale(f float64) {
	d.Transform(geom.Identity.Scale(f, f))
}

// ScaleXY scales the content about the origin, per axis.
func (d *Document[D]) ScaleXY(sx, sy float64) {
	d.Transform(geom.Identity.Scale(sx, sy))
}

// Skew skews the content by ax and ay radians.
func (d *Document[D]) Skew(ax, ay float64) {
	d.Transform(geom.Identity.SkewX(ax).SkewY(ay))
}

// Crop clips all geometry to the rectangle.
func (d *Document[D]) Crop(r geom.Rect) {
	for _, l := range d.layers {
		l.Crop(r)
	}
}

// SetStrokeWidth sets the stroke width of every layer (see
// Layer.SetStrokeWidth).
func (d *Document[D]) SetStrokeWidth(w float64) {
	for _, l := range d.layers {
		l.SetStrokeWidth(w)
	}
}

// MergeLayers appends the paths of the source layers to dst, in ascending
// source ID order, and removes the sources. Resolved path styles are
// preserved: layer-level fields of a source are pushed down onto its paths
// before the move.
func (d *Document[D]) MergeLayers(dst LayerID, srcs ...LayerID) {
	target := d.EnsureLayer(dst)

	sorted := append([]LayerID(nil), srcs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, id := range sorted {
		if id == dst {
			continue
		}
		src := d.layers[id]
		if src == nil {
			continue
		}
		for _, p := range src.Paths {
			pushDownDefaults(p, &src.Defaults)
			target.Paths = append(target.Paths, p)
		}
		delete(d.layers, id)
	}
}

// pushDownDefaults copies the layer-level fields onto the path for each
// field the path leaves unset.
func pushDownDefaults[D PathData[D]](p *Path[D], defaults *Metadata) {
	if _, ok := p.Meta.Color(); !ok {
		if c, ok := defaults.Color(); ok {
			p.Meta.SetColor(c)
		}
	}
	if _, ok := p.Meta.StrokeWidth(); !ok {
		if w, ok := defaults.StrokeWidth(); ok {
			p.Meta.SetStrokeWidth(w)
		}
	}
	if _, ok := p.Meta.Visible(); !ok {
		if v, ok := defaults.Visible(); ok {
			p.Meta.SetVisible(v)
		}
	}
}

// CenterContent translates the geometry so that its bounds are centered on
// the page. It is a no-op without a page size or without geometry.
func (d *Document[D]) CenterContent() {
	if d.PageSize == nil {
		return
	}
	bb, ok := d.Bounds()
	if !ok {
		return
	}
	c := bb.Center()
	d.Translate(d.PageSize.W/2-c.X, d.PageSize.H/2-c.Y)
}
