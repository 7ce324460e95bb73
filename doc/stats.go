package doc

import "github.com/benoitkugler/plotsvg/geom"

// Travel summarizes the plotter motion needed to draw some content. PenUp
// is the travel between paths, starting from the origin; PenDown is the
// total drawn length.
type Travel struct {
	PenDown, PenUp float64
}

// LayerTravel measures the travel of a flattened layer, drawing paths in
// order with the pen starting at the origin.
func LayerTravel(l *Layer[*Polyline]) Travel {
	var t Travel
	pen := geom.Point{}
	for _, p := range l.Paths {
		start, ok := p.Data.Start()
		if !ok {
			continue
		}
		t.PenUp += pen.Distance(start)
		t.PenDown += p.Data.Length()
		pen, _ = p.Data.End()
	}
	return t
}

// DocumentTravel sums the per-layer travel; each layer restarts from the
// origin (a pen change).
func DocumentTravel(d *Document[*Polyline]) Travel {
	var t Travel
	d.ForEachLayer(func(_ LayerID, l *Layer[*Polyline]) {
		lt := LayerTravel(l)
		t.PenDown += lt.PenDown
		t.PenUp += lt.PenUp
	})
	return t
}
