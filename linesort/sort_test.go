package linesort

import (
	"testing"

	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
)

func line(x1, y1, x2, y2 float64) *doc.Path[*doc.Polyline] {
	return doc.NewPath(doc.NewPolyline(geom.Pt(x1, y1), geom.Pt(x2, y2)))
}

func points(p *doc.Path[*doc.Polyline]) []geom.Point { return p.Data.Points }

func assertOrder(t *testing.T, l *doc.Layer[*doc.Polyline], want []*doc.Path[*doc.Polyline]) {
	t.Helper()
	if len(l.Paths) != len(want) {
		t.Fatalf("got %d paths, want %d", len(l.Paths), len(want))
	}
	for i, p := range l.Paths {
		if p != want[i] {
			t.Errorf("path %d: got %v, want %v", i, points(p), points(want[i]))
		}
	}
}

func TestSortGreedy(t *testing.T) {
	l := &doc.Layer[*doc.Polyline]{}

	p1 := line(10, 10.1, 0, 0)
	p2 := line(3, 2.3, 10, 10)
	p3 := line(1, 0, 0, 0)
	p4 := line(2, 1, 1, 0.1)
	l.Paths = append(l.Paths, p1)
	l.Paths = append(l.Paths, p2)
	l.Paths = append(l.Paths, p3)
	l.Paths = append(l.Paths, p4)

	SortLayer(l, Options{})

	assertOrder(t, l, []*doc.Path[*doc.Polyline]{p3, p4, p2, p1})
	// without flip, no path may be reversed
	if got := points(p3)[0]; got != geom.Pt(1, 0) {
		t.Errorf("p3 was reversed: starts at %v", got)
	}
}

func TestSortFlip(t *testing.T) {
	l := &doc.Layer[*doc.Polyline]{}

	p1 := line(10, 10.1, 20, 20)
	p2 := line(3, 2.3, 10, 10)
	p3 := line(1, 0, 0, 0)
	p4 := line(3, 2, 1, 0.1)
	l.Paths = append(l.Paths, p1)
	l.Paths = append(l.Paths, p2)
	l.Paths = append(l.Paths, p3)
	l.Paths = append(l.Paths, p4)

	SortLayer(l, Options{Flip: true})

	assertOrder(t, l, []*doc.Path[*doc.Polyline]{p3, p4, p2, p1})
	// p3 and p4 are picked up by their end point and drawn backwards
	if got := points(p3)[0]; got != geom.Pt(0, 0) {
		t.Errorf("p3 not reversed: starts at %v", got)
	}
	if got := points(p4)[0]; got != geom.Pt(1, 0.1) {
		t.Errorf("p4 not reversed: starts at %v", got)
	}
	if got := points(p2)[0]; got != geom.Pt(3, 2.3) {
		t.Errorf("p2 was reversed: starts at %v", got)
	}
}

func TestSortNeverIncreasesTravel(t *testing.T) {
	build := func() *doc.Layer[*doc.Polyline] {
		l := &doc.Layer[*doc.Polyline]{}
		l.Paths = append(l.Paths, line(40, 2, 38, 9))
		l.Paths = append(l.Paths, line(0.5, 0.5, 7, 3))
		l.Paths = append(l.Paths, line(39, 10, 41, 1))
		l.Paths = append(l.Paths, line(8, 3, 20, 20))
		l.Paths = append(l.Paths, line(21, 20, 39, 9.5))
		return l
	}

	for _, opts := range []Options{
		{},
		{Flip: true},
		{TwoOpt: 10},
		{Flip: true, TwoOpt: 10},
	} {
		l := build()
		before := doc.LayerTravel(l).PenUp
		SortLayer(l, opts)
		after := doc.LayerTravel(l).PenUp
		if after > before {
			t.Errorf("opts %+v: travel went from %g to %g", opts, before, after)
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	l := &doc.Layer[*doc.Polyline]{}
	l.Paths = append(l.Paths, line(40, 2, 38, 9))
	l.Paths = append(l.Paths, line(0.5, 0.5, 7, 3))
	l.Paths = append(l.Paths, line(39, 10, 41, 1))
	l.Paths = append(l.Paths, line(8, 3, 20, 20))

	opts := Options{Flip: true, TwoOpt: 5}
	SortLayer(l, opts)
	first := append([]*doc.Path[*doc.Polyline]{}, l.Paths...)
	travel := doc.LayerTravel(l).PenUp

	SortLayer(l, opts)
	assertOrder(t, l, first)
	if got := doc.LayerTravel(l).PenUp; got != travel {
		t.Errorf("travel changed from %g to %g", travel, got)
	}
}

func TestSortEmptyPathsLast(t *testing.T) {
	l := &doc.Layer[*doc.Polyline]{}
	empty := doc.NewPath(doc.NewPolyline())
	p := line(1, 0, 2, 0)
	l.Paths = append(l.Paths, empty)
	l.Paths = append(l.Paths, p)

	SortLayer(l, Options{})

	assertOrder(t, l, []*doc.Path[*doc.Polyline]{p, empty})
}

func TestSortKeepsMetadata(t *testing.T) {
	l := &doc.Layer[*doc.Polyline]{}
	p := line(5, 0, 6, 0)
	p.Meta.SetColor(doc.Red)
	l.Paths = append(l.Paths, p)
	l.Paths = append(l.Paths, line(1, 0, 2, 0))

	SortLayer(l, Options{})

	if c, ok := l.Paths[1].Meta.Color(); !ok || c != doc.Red {
		t.Errorf("metadata lost: got %v, %v", c, ok)
	}
}

func TestTwoOptReordersClosedPaths(t *testing.T) {
	// single points are closed, so they may be reordered without flip
	far := doc.NewPath(doc.NewPolyline(geom.Pt(10, 0)))
	near := doc.NewPath(doc.NewPolyline(geom.Pt(1, 0)))
	paths := []*doc.Path[*doc.Polyline]{far, near}

	twoOpt(paths, false, 10)

	if paths[0] != near || paths[1] != far {
		t.Errorf("got order %v, %v", points(paths[0]), points(paths[1]))
	}
}

func TestTwoOptFlipsOpenPaths(t *testing.T) {
	a := line(5, 0, 6, 0)
	b := line(1, 0, 2, 0)
	paths := []*doc.Path[*doc.Polyline]{a, b}

	// without flip the open paths cannot move
	twoOpt(paths, false, 10)
	if paths[0] != a {
		t.Fatal("open paths were reordered without flip")
	}

	twoOpt(paths, true, 10)
	if paths[0] != b || paths[1] != a {
		t.Fatalf("got order %v, %v", points(paths[0]), points(paths[1]))
	}
	// the passes converge on b then a, both forward: pen-up 1 + 3 against
	// the initial 5 + 3
	if got := points(b)[0]; got != geom.Pt(1, 0) {
		t.Errorf("b starts at %v", got)
	}
	if got := points(a)[0]; got != geom.Pt(5, 0) {
		t.Errorf("a starts at %v", got)
	}
	l := &doc.Layer[*doc.Polyline]{}
	l.Paths = append(l.Paths, b)
	l.Paths = append(l.Paths, a)
	if got := doc.LayerTravel(l).PenUp; got != 4 {
		t.Errorf("pen-up travel = %g, want 4", got)
	}
}

func TestSortPicksUpNearestEndpoint(t *testing.T) {
	l := &doc.Layer[*doc.Polyline]{}
	a := line(0, 0, 100, 0)
	b := line(198, 0, 198, 50)
	c := line(98, 0, 98, 50)
	l.Paths = append(l.Paths, a)
	l.Paths = append(l.Paths, b)
	l.Paths = append(l.Paths, c)

	SortLayer(l, Options{Flip: true})

	assertOrder(t, l, []*doc.Path[*doc.Polyline]{a, c, b})
	// b is entered by its top end, which is closer to c's exit than its
	// bottom end
	if got := points(b)[0]; got != geom.Pt(198, 50) {
		t.Errorf("b starts at %v", got)
	}
}

func TestSortDocument(t *testing.T) {
	d := doc.NewDocument[*doc.Polyline]()
	for id := doc.LayerID(1); id <= 4; id++ {
		l := d.EnsureLayer(id)
		l.Paths = append(l.Paths, line(10, 10.1, 0, 0))
		l.Paths = append(l.Paths, line(3, 2.3, 10, 10))
		l.Paths = append(l.Paths, line(1, 0, 0, 0))
	}

	SortDocument(d, Options{})

	for _, id := range d.LayerIDs() {
		l := d.Layer(id)
		if got, _ := l.Paths[0].Data.Start(); got != geom.Pt(1, 0) {
			t.Errorf("layer %d: first path starts at %v", id, got)
		}
	}
}
