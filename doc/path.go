package doc

import "github.com/benoitkugler/plotsvg/geom"

// PathData is the constraint shared by the two path representations,
// *BezPath (curves) and *Polyline (flattened). The document hierarchy is
// generic over it, so every operation that does not depend on the concrete
// representation is written once.
type PathData[D any] interface {
	Bounds() (geom.Rect, bool)
	Start() (geom.Point, bool)
	End() (geom.Point, bool)
	Len() int
	Transform(geom.Matrix)
	Reverse()
	// Crop clips the data to the rectangle. The result may be empty, or
	// hold several pieces when the geometry leaves and re-enters the
	// rectangle.
	Crop(geom.Rect) []D
	Clone() D
	// Join appends other as a continuation of the receiver, removing the
	// pen-up move between them.
	Join(other D)
	ToSVGPath() string
}

// Path is a piece of geometry with its optional metadata.
type Path[D PathData[D]] struct {
	Data D
	Meta Metadata
}

// NewPath wraps data in a path with empty metadata.
func NewPath[D PathData[D]](data D) *Path[D] {
	return &Path[D]{Data: data}
}

// Clone returns a deep copy of the geometry; the metadata is shared
// copy-on-write.
func (p *Path[D]) Clone() *Path[D] {
	return &Path[D]{Data: p.Data.Clone(), Meta: p.Meta.Clone()}
}

func (p *Path[D]) Bounds() (geom.Rect, bool) { return p.Data.Bounds() }

func (p *Path[D]) Transform(m geom.Matrix) { p.Data.Transform(m) }
