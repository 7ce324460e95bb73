// Package svgwrite serializes plotter documents to SVG, one Inkscape layer
// group per document layer, with resolved stroke attributes on each path.
package svgwrite

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
)

// Write serializes the document. It works for both the curve and the
// flattened representations.
func Write[D doc.PathData[D]](w io.Writer, d *doc.Document[D]) error {
	buf := bufio.NewWriter(w)
	canvas := svg.New(buf)
	canvas.Decimals = 5

	dims := pageRect(d)
	canvas.Start(dims.Width(), dims.Height(),
		fmt.Sprintf(`viewBox="%.5f %.5f %.5f %.5f"`,
			dims.Min.X, dims.Min.Y, dims.Width(), dims.Height()),
		`xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`,
		`xmlns:cc="http://creativecommons.org/ns"`,
		`xmlns:dc="http://purl.org/dc/elements/1.1/"`,
		`xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns"`,
	)

	writeMetadata(buf, d.Source)

	d.ForEachLayer(func(id doc.LayerID, layer *doc.Layer[D]) {
		attrs := []string{
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`id="layer%d"`, id),
			`fill="none"`,
		}
		if layer.Name != "" {
			attrs = append(attrs, fmt.Sprintf(`inkscape:label="%s"`, escapeAttr(layer.Name)))
		}
		canvas.Group(attrs...)
		for _, p := range layer.Paths {
			st := d.ResolveStyle(id, p)
			if !st.Visible {
				continue
			}
			data := p.Data.ToSVGPath()
			if data == "" {
				continue
			}
			pattrs := []string{
				fmt.Sprintf(`stroke="%s"`, st.Color.HexString()),
				fmt.Sprintf(`stroke-width="%s"`, trimFloat(st.StrokeWidth)),
			}
			if st.Color.A < 255 {
				pattrs = append(pattrs, fmt.Sprintf(`stroke-opacity="%.3f"`, st.Color.Opacity()))
			}
			canvas.Path(data, pattrs...)
		}
		canvas.Gend()
	})

	canvas.End()
	return buf.Flush()
}

// WriteFile serializes the document to the named file.
func WriteFile[D doc.PathData[D]](name string, d *doc.Document[D]) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ToString serializes the document to a string.
func ToString[D doc.PathData[D]](d *doc.Document[D]) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// pageRect returns the emitted page: the page size when known, else the
// content bounds, with a minimum of 1x1.
func pageRect[D doc.PathData[D]](d *doc.Document[D]) geom.Rect {
	var dims geom.Rect
	if d.PageSize != nil {
		dims = geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(d.PageSize.W, d.PageSize.H))
	} else if bb, ok := d.Bounds(); ok {
		dims = bb
	} else {
		dims = geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(1, 1))
	}
	// ensure a minimum size of 1x1
	min := geom.RectFromPoints(dims.Min, dims.Min.Add(geom.Pt(1, 1)))
	return dims.Union(min)
}

// writeMetadata emits the Dublin Core source block.
func writeMetadata(w io.Writer, source string) {
	if source == "" {
		return
	}
	fmt.Fprintf(w, "<metadata>\n<rdf:RDF>\n<cc:Work>\n"+
		"<dc:format>image/svg+xml</dc:format>\n"+
		"<dc:source>%s</dc:source>\n"+
		"</cc:Work>\n</rdf:RDF>\n</metadata>\n", escapeText(source))
}

func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s)) //nolint:errcheck // bytes.Buffer cannot fail
	return buf.String()
}

// escapeAttr escapes a value for use inside a double-quoted XML attribute.
func escapeAttr(s string) string { return escapeText(s) }

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.5f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
