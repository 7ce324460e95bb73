package svgread

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
)

var errParamMismatch = errors.New("svgread: parameter mismatch")

type svgFunc func(c *cursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

func svgF(c *cursor, attrs []xml.Attr) error {
	c.seenRoot = true
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			if err = c.getPoints(attr.Value); err != nil {
				return err
			}
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.viewBox.x = c.points[0]
			c.viewBox.y = c.points[1]
			c.viewBox.w = c.points[2]
			c.viewBox.h = c.points[3]
			c.viewBox.ok = true
		case "width":
			c.width, err = parseLength(attr.Value)
		case "height":
			c.height, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	// children inherit the viewBox normalization
	c.topStyle().transform = c.rootTransform()
	return nil
}

// gF opens a layer when the group is a direct child of the root element.
// Nested groups only contribute their style and transform.
func gF(c *cursor, attrs []xml.Attr) error {
	if c.depth != 1 {
		return nil
	}
	c.topGroups++
	c.inLayer = true

	var label, id string
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "label": // inkscape:label
			label = attr.Value
		case "id":
			id = attr.Value
		}
	}

	lid, ok := layerIDFromString(label)
	if !ok {
		lid, ok = layerIDFromString(id)
	}
	if !ok {
		lid = doc.LayerID(c.topGroups)
	}
	c.curLayer = lid

	layer := c.doc.EnsureLayer(lid)
	if label != "" {
		layer.Name = label
	}
	return nil
}

// layerIDFromString extracts the first run of digits of s as a layer ID.
// An explicit 0 is coerced to 1, an Inkscape artifact: "Layer 0" labels
// denote a regular layer, while ID 0 is reserved for bare top-level
// geometry.
func layerIDFromString(s string) (doc.LayerID, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			s = s[:i]
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	n := 0
	for _, r := range s[start:] {
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return 0, false
		}
	}
	if n == 0 {
		n = 1
	}
	return doc.LayerID(n), true
}

func lineF(c *cursor, attrs []xml.Attr) error {
	var x1, y1, x2, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseLength(attr.Value)
		case "y1":
			y1, err = parseLength(attr.Value)
		case "x2":
			x2, err = parseLength(attr.Value)
		case "y2":
			y2, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.path.MoveTo(geom.Pt(x1, y1))
	c.path.LineTo(geom.Pt(x2, y2))
	return nil
}

func polylineF(c *cursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		if err := c.getPoints(attr.Value); err != nil {
			return err
		}
		if len(c.points)%2 != 0 {
			return errors.New("svgread: odd number of polyline coordinates")
		}
	}
	if len(c.points) >= 4 {
		c.path.MoveTo(geom.Pt(c.points[0], c.points[1]))
		for i := 2; i < len(c.points)-1; i += 2 {
			c.path.LineTo(geom.Pt(c.points[i], c.points[i+1]))
		}
	}
	return nil
}

func polygonF(c *cursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) >= 4 {
		c.path.Close()
	}
	return err
}

func rectF(c *cursor, attrs []xml.Attr) error {
	var x, y, w, h float64
	rx, ry := -1.0, -1.0
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseLength(attr.Value)
		case "y":
			y, err = parseLength(attr.Value)
		case "width":
			w, err = parseLength(attr.Value)
		case "height":
			h, err = parseLength(attr.Value)
		case "rx":
			rx, err = parseLength(attr.Value)
		case "ry":
			ry, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	// rx/ry defaulting per the SVG spec
	switch {
	case rx < 0 && ry < 0:
		rx, ry = 0, 0
	case rx < 0:
		rx = ry
	case ry < 0:
		ry = rx
	}
	addRect(&c.path, x, y, w, h, rx, ry)
	return nil
}

func circleF(c *cursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseLength(attr.Value)
		case "cy":
			cy, err = parseLength(attr.Value)
		case "r":
			rx, err = parseLength(attr.Value)
			ry = rx
		case "rx":
			rx, err = parseLength(attr.Value)
		case "ry":
			ry, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	addEllipse(&c.path, cx, cy, rx, ry)
	return nil
}

func pathF(c *cursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			if err := parsePathData(attr.Value, &c.path); err != nil {
				return err
			}
		}
	}
	return nil
}

// getPoints fills c.points with the numbers of a comma or space separated
// list.
func (c *cursor) getPoints(s string) error {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	c.points = c.points[:0]
	for _, f := range fields {
		v, err := parseBasicFloat(f)
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
	}
	return nil
}
