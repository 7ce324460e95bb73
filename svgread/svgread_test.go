package svgread

import (
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
)

func mustRead(t *testing.T, src string) *doc.Document[*doc.BezPath] {
	t.Helper()
	out, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func onlyPath(t *testing.T, d *doc.Document[*doc.BezPath], id doc.LayerID) *doc.Path[*doc.BezPath] {
	t.Helper()
	l := d.Layer(id)
	if l == nil {
		t.Fatalf("no layer %d", id)
	}
	if len(l.Paths) != 1 {
		t.Fatalf("layer %d: got %d paths, want 1", id, len(l.Paths))
	}
	return l.Paths[0]
}

func TestReadMinimal(t *testing.T) {
	d := mustRead(t, `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <path d="M 10,0 L 20,0"/>
</svg>`)

	if d.PageSize == nil || d.PageSize.W != 100 || d.PageSize.H != 100 {
		t.Fatalf("page size = %+v", d.PageSize)
	}
	p := onlyPath(t, d, 0)
	if got := p.Data.ToSVGPath(); got != "M10,0 L20,0" {
		t.Errorf("got %q", got)
	}
	if !p.Meta.IsEmpty() {
		t.Errorf("unexpected metadata")
	}
}

func TestReadNotSVG(t *testing.T) {
	if _, err := Read(strings.NewReader(`<html></html>`)); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLayerIDFromString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want doc.LayerID
		ok   bool
	}{
		{"2 - red pen", 2, true},
		{"Layer 0", 1, true},
		{"layer12b", 12, true},
		{"10 20", 10, true},
		{"pen", 0, false},
		{"", 0, false},
	} {
		got, ok := layerIDFromString(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("layerIDFromString(%q) = %d, %v; want %d, %v",
				tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInkscapeLayers(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg"
  xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
  <g inkscape:groupmode="layer" inkscape:label="2 - red pen">
    <path d="M 0,0 L 1,0"/>
  </g>
  <g id="layer7">
    <path d="M 0,0 L 1,0"/>
  </g>
  <g>
    <path d="M 0,0 L 1,0"/>
  </g>
</svg>`)

	ids := d.LayerIDs()
	want := []doc.LayerID{2, 3, 7}
	if len(ids) != len(want) {
		t.Fatalf("got layers %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got layers %v, want %v", ids, want)
		}
	}
	if got := d.Layer(2).Name; got != "2 - red pen" {
		t.Errorf("layer 2 name = %q", got)
	}
	if got := d.Layer(7).Name; got != "" {
		t.Errorf("layer 7 name = %q", got)
	}
}

func TestBareShapesGoToLayerZero(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <line x1="0" y1="0" x2="5" y2="5"/>
  <g><path d="M 0,0 L 1,0"/></g>
</svg>`)

	if got := len(d.Layer(0).Paths); got != 1 {
		t.Errorf("layer 0: got %d paths", got)
	}
	if got := len(d.Layer(1).Paths); got != 1 {
		t.Errorf("layer 1: got %d paths", got)
	}
}

func TestCircleNormalized(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <circle cx="5" cy="5" r="2"/>
</svg>`)

	p := onlyPath(t, d, 0)
	// a MoveTo, four cubics and a Close
	if got := p.Data.Len(); got != 6 {
		t.Fatalf("got %d commands, want 6", got)
	}
	if start, _ := p.Data.Start(); start != geom.Pt(7, 5) {
		t.Errorf("starts at %v, want (7,5)", start)
	}
	bb, _ := p.Data.Bounds()
	for _, v := range []struct{ got, want float64 }{
		{bb.Min.X, 3}, {bb.Min.Y, 3}, {bb.Max.X, 7}, {bb.Max.Y, 7},
	} {
		if math.Abs(v.got-v.want) > 1e-3 {
			t.Errorf("bounds %v, want [3,3]-[7,7]", bb)
		}
	}
}

func TestRect(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <rect x="1" y="2" width="10" height="20"/>
</svg>`)

	p := onlyPath(t, d, 0)
	if got := p.Data.ToSVGPath(); got != "M1,2 L11,2 L11,22 L1,22 Z" {
		t.Errorf("got %q", got)
	}
}

func TestPolygon(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <polygon points="0,0 10,0 10,10"/>
</svg>`)

	p := onlyPath(t, d, 0)
	if got := p.Data.ToSVGPath(); got != "M0,0 L10,0 L10,10 Z" {
		t.Errorf("got %q", got)
	}
}

func TestGroupTransform(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <g transform="translate(10,20)">
    <g transform="scale(2)">
      <path d="M 1,1 L 2,1"/>
    </g>
  </g>
</svg>`)

	p := onlyPath(t, d, 1)
	start, _ := p.Data.Start()
	end, _ := p.Data.End()
	if start != geom.Pt(12, 22) || end != geom.Pt(14, 22) {
		t.Errorf("got %v -> %v, want (12,22) -> (14,22)", start, end)
	}
}

func TestViewBoxScaling(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg"
  width="100" height="50" viewBox="0 0 200 100">
  <path d="M 0,0 L 200,100"/>
</svg>`)

	if d.PageSize == nil || d.PageSize.W != 100 || d.PageSize.H != 50 {
		t.Fatalf("page size = %+v", d.PageSize)
	}
	p := onlyPath(t, d, 0)
	if end, _ := p.Data.End(); end != geom.Pt(100, 50) {
		t.Errorf("ends at %v, want (100,50)", end)
	}
}

func TestStrokeAttributes(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M 0,0 L 1,0" stroke="#ff0000" stroke-width="2" stroke-opacity="0.5"/>
</svg>`)

	p := onlyPath(t, d, 0)
	col, ok := p.Meta.Color()
	if !ok || col != (doc.Color{R: 255, A: 128}) {
		t.Errorf("color = %v, %v", col, ok)
	}
	if w, ok := p.Meta.StrokeWidth(); !ok || w != 2 {
		t.Errorf("stroke width = %v, %v", w, ok)
	}
}

func TestStyleAttribute(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M 0,0 L 1,0" style="stroke:blue;stroke-width:2mm;display:none"/>
</svg>`)

	p := onlyPath(t, d, 0)
	if col, ok := p.Meta.Color(); !ok || col != doc.Blue {
		t.Errorf("color = %v, %v", col, ok)
	}
	w, ok := p.Meta.StrokeWidth()
	if !ok || math.Abs(w-2*96/25.4) > 1e-9 {
		t.Errorf("stroke width = %v, %v", w, ok)
	}
	if v, ok := p.Meta.Visible(); !ok || v {
		t.Errorf("visible = %v, %v", v, ok)
	}
}

func TestStrokeInheritance(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <g stroke="green">
    <path d="M 0,0 L 1,0"/>
    <path d="M 0,1 L 1,1" stroke="none"/>
  </g>
</svg>`)

	l := d.Layer(1)
	if len(l.Paths) != 2 {
		t.Fatalf("got %d paths", len(l.Paths))
	}
	// CSS "green" is the half-intensity one
	if col, ok := l.Paths[0].Meta.Color(); !ok || col != (doc.Color{G: 128, A: 255}) {
		t.Errorf("inherited color = %v, %v", col, ok)
	}
	if _, ok := l.Paths[1].Meta.Color(); ok {
		t.Errorf("stroke:none should leave the color unset")
	}
}

func TestCropToPage(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
  <path d="M 5,5 L 15,5"/>
</svg>`)

	p := onlyPath(t, d, 0)
	if end, _ := p.Data.End(); end != geom.Pt(10, 5) {
		t.Errorf("ends at %v, want (10,5)", end)
	}
}

func TestErrorModes(t *testing.T) {
	const src = `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M 0,0 L bogus"/>
  <path d="M 0,0 L 1,0"/>
</svg>`

	if _, err := Read(strings.NewReader(src)); err == nil {
		t.Fatal("strict mode: expected an error")
	}

	d, err := ReadWithMode(strings.NewReader(src), IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	// the bad path is dropped, the valid one kept
	if got := d.PathCount(); got != 1 {
		t.Errorf("got %d paths, want 1", got)
	}
}

func TestArcPathEndPoint(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M 0,0 A 5,5 0 0 1 10,0"/>
</svg>`)

	p := onlyPath(t, d, 0)
	if end, _ := p.Data.End(); end != geom.Pt(10, 0) {
		t.Errorf("ends at %v, want (10,0)", end)
	}
	bb, _ := p.Data.Bounds()
	// half circle of radius 5 above the x axis (SVG y grows downwards,
	// sweep=1 turns clockwise on screen)
	if math.Abs(bb.Min.Y-(-5)) > 1e-3 || math.Abs(bb.Max.Y) > 1e-3 {
		t.Errorf("bounds %v", bb)
	}
}

func TestQuadraticRaised(t *testing.T) {
	d := mustRead(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M 0,0 Q 5,10 10,0"/>
</svg>`)

	p := onlyPath(t, d, 0)
	bb, _ := p.Data.Bounds()
	// apex of the quadratic is at y = 5
	if math.Abs(bb.Max.Y-5) > 1e-9 {
		t.Errorf("bounds %v, want max y 5", bb)
	}
}
