// Package svgread parses SVG files into plotter documents. Every supported
// shape is normalized to cubic Bézier segments; top-level groups become
// layers following the Inkscape conventions.
package svgread

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
	"golang.org/x/net/html/charset"
)

// ErrorMode controls how the parser reacts to content it cannot handle.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsable attributes.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unparsable attributes with a log message.
	WarnErrorMode
	// StrictErrorMode aborts the parse on the first unparsable attribute;
	// no partial document is returned.
	StrictErrorMode
)

// style is the inherited state pushed on the cursor stack for each element.
type style struct {
	stroke      *doc.Color
	strokeWidth *float64
	opacity     float64 // stroke opacity multiplier
	hidden      bool    // display:none
	transform   geom.Matrix
}

// cursor is the parse state shared by the element handlers.
type cursor struct {
	doc        *doc.Document[*doc.BezPath]
	styleStack []style
	errorMode  ErrorMode

	// path collects the geometry produced by the current element,
	// in local (untransformed) coordinates
	path doc.BezPath

	// scratch buffer for number lists
	points []float64

	depth     int  // nesting depth below the root element
	seenRoot  bool // a <svg> element was found
	inLayer   bool
	curLayer  doc.LayerID
	topGroups int // top-level groups seen so far, for default layer IDs

	// page geometry from the root element
	width, height float64
	viewBox       struct {
		x, y, w, h float64
		ok         bool
	}
}

func (c *cursor) topStyle() *style { return &c.styleStack[len(c.styleStack)-1] }

// Read parses an SVG document in strict mode: any unparsable attribute or
// path aborts with an error.
func Read(r io.Reader) (*doc.Document[*doc.BezPath], error) {
	return ReadWithMode(r, StrictErrorMode)
}

// ReadFile parses the named SVG file in strict mode.
func ReadFile(name string) (*doc.Document[*doc.BezPath], error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := ReadWithMode(f, StrictErrorMode)
	if err != nil {
		return nil, err
	}
	out.Source = name
	return out, nil
}

// ReadWithMode parses an SVG document with the given error handling mode.
func ReadWithMode(r io.Reader, errMode ErrorMode) (*doc.Document[*doc.BezPath], error) {
	c := &cursor{
		doc:        doc.NewDocument[*doc.BezPath](),
		styleStack: []style{{opacity: 1, transform: geom.Identity}},
		errorMode:  errMode,
	}

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !c.seenRoot {
					return nil, errors.New("svgread: not an svg document")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err = c.handleError(c.pushStyle(se.Attr)); err != nil {
				return nil, err
			}
			if err = c.readStartElement(se); err != nil {
				return nil, err
			}
			c.depth++
		case xml.EndElement:
			c.depth--
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
			if se.Name.Local == "g" && c.depth == 1 {
				c.inLayer = false
			}
		}
	}

	c.finish()
	return c.doc, nil
}

// finish applies the page size and crops the content to the page.
func (c *cursor) finish() {
	w, h := c.width, c.height
	if w == 0 && c.viewBox.ok {
		w, h = c.viewBox.w, c.viewBox.h
	}
	if w > 0 && h > 0 {
		c.doc.PageSize = &doc.PageSize{W: w, H: h}
		c.doc.Crop(geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(w, h)))
	}
}

// rootTransform maps viewBox coordinates to page coordinates.
func (c *cursor) rootTransform() geom.Matrix {
	m := geom.Identity
	if !c.viewBox.ok {
		return m
	}
	if c.width > 0 && c.height > 0 && c.viewBox.w > 0 && c.viewBox.h > 0 {
		m = m.Scale(c.width/c.viewBox.w, c.height/c.viewBox.h)
	}
	return m.Translate(-c.viewBox.x, -c.viewBox.y)
}

// readStartElement dispatches the element to its handler and moves any
// produced geometry into the document.
func (c *cursor) readStartElement(se xml.StartElement) error {
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		// unsupported elements (metadata, text, filters...) carry no
		// plotter geometry and are skipped
		return nil
	}
	if err := df(c, se.Attr); err != nil {
		// drop any partial geometry of the failed element
		c.path = doc.BezPath{}
		return c.handleError(err)
	}

	if c.path.Len() > 0 {
		st := c.topStyle()
		data := c.path
		c.path = doc.BezPath{}
		data.Transform(st.transform)

		p := c.targetLayer().Push(&data)
		if st.stroke != nil {
			col := *st.stroke
			if st.opacity < 1 {
				col.A = uint8(st.opacity*float64(col.A) + 0.5)
			}
			p.Meta.SetColor(col)
		}
		if st.strokeWidth != nil {
			p.Meta.SetStrokeWidth(*st.strokeWidth)
		}
		if st.hidden {
			p.Meta.SetVisible(false)
		}
	}
	return nil
}

// targetLayer returns the layer receiving geometry: the current top-level
// group, or layer 0 for bare top-level shapes.
func (c *cursor) targetLayer() *doc.Layer[*doc.BezPath] {
	if c.inLayer {
		return c.doc.EnsureLayer(c.curLayer)
	}
	return c.doc.EnsureLayer(0)
}

// handleError applies the error mode to a recoverable parse error.
func (c *cursor) handleError(err error) error {
	if err == nil {
		return nil
	}
	switch c.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		logWarn(err)
	}
	return nil
}
