package svgread

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/plotsvg/geom"
)

func logWarn(err error) { log.Println("svgread:", err) }

// pushStyle parses the style-related attributes of an element and pushes
// the resulting state on the stack. It always pushes, even on error, so
// that the stack stays balanced with the element nesting.
func (c *cursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}

	// copy of the enclosing style
	cur := *c.topStyle()
	var firstErr error
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if err := c.readStyleAttr(&cur, k, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.styleStack = append(c.styleStack, cur)
	return firstErr
}

func (c *cursor) readStyleAttr(cur *style, k, v string) error {
	switch k {
	case "stroke":
		col, err := parseColor(v)
		if err != nil {
			return err
		}
		cur.stroke = col
	case "stroke-width":
		w, err := parseLength(v)
		if err != nil {
			return err
		}
		cur.strokeWidth = &w
	case "stroke-opacity", "opacity":
		op, err := parseBasicFloat(strings.TrimSuffix(v, "%"))
		if err != nil {
			return err
		}
		if strings.HasSuffix(v, "%") {
			op /= 100
		}
		cur.opacity *= math.Max(0, math.Min(1, op))
	case "display":
		if v == "none" {
			cur.hidden = true
		}
	case "transform":
		m, err := c.parseTransform(cur.transform, v)
		if err != nil {
			return err
		}
		cur.transform = m
	}
	return nil
}

// parseTransform parses a transform attribute value and composes it onto m.
func (c *cursor) parseTransform(m geom.Matrix, v string) (geom.Matrix, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m, errParamMismatch // badly formed transformation
		}
		if err := c.getPoints(d[1]); err != nil {
			return m, err
		}
		var err error
		m, err = c.readTransformAttr(m, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func (c *cursor) readTransformAttr(m geom.Matrix, k string) (geom.Matrix, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m = m.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m = m.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0] * math.Pi / 180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m = m.Translate(c.points[0], 0)
		} else if ln == 2 {
			m = m.Translate(c.points[0], c.points[1])
		} else {
			return m, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m = m.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m = m.Scale(c.points[0], c.points[1])
		} else {
			return m, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m = m.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m = m.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m = m.Mult(geom.Matrix{
				A: c.points[0], B: c.points[1],
				C: c.points[2], D: c.points[3],
				E: c.points[4], F: c.points[5],
			})
		} else {
			return m, errParamMismatch
		}
	default:
		return m, errParamMismatch
	}
	return m, nil
}

// pixelsPerUnit converts CSS units to pixels (96 dpi).
var pixelsPerUnit = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"in": 96,
	"cm": 96.0 / 2.54,
	"mm": 96.0 / 25.4,
	"q":  96.0 / 25.4 / 4,
}

// parseLength parses a CSS length with an optional absolute unit suffix.
func parseLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	unit := ""
	for u := range pixelsPerUnit {
		if u != "" && strings.HasSuffix(v, u) {
			unit = u
			break
		}
	}
	f, err := parseBasicFloat(strings.TrimSuffix(v, unit))
	if err != nil {
		return 0, fmt.Errorf("svgread: invalid length %q: %w", v, err)
	}
	return f * pixelsPerUnit[unit], nil
}

func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

var errBadColor = errors.New("svgread: unsupported color")
