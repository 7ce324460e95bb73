package linesort

import (
	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
	"github.com/benoitkugler/plotsvg/internal/parallel"
)

// Options controls the sorting strategy.
type Options struct {
	// Flip allows paths to be drawn backwards when their end point is
	// closer to the pen than their start point.
	Flip bool
	// TwoOpt is the maximum number of 2-opt improvement passes run after
	// the greedy ordering. Zero disables the refinement.
	TwoOpt int
}

// SortLayer reorders the paths of the layer so that the pen, starting at the
// origin, visits them in a greedy nearest neighbor order. Empty paths are
// moved to the end. The pen-up travel of the layer never increases.
func SortLayer[D doc.PathData[D]](l *doc.Layer[D], opts Options) {
	sortable, empty := splitEmpty(l.Paths)
	if len(sortable) > 1 {
		sortable = greedySort(sortable, opts.Flip)
		if opts.TwoOpt > 0 {
			twoOpt(sortable, opts.Flip, opts.TwoOpt)
		}
	}
	l.Paths = append(sortable, empty...)
}

// SortDocument sorts every layer of the document, concurrently.
func SortDocument[D doc.PathData[D]](d *doc.Document[D], opts Options) {
	ids := d.LayerIDs()
	parallel.ForEach(len(ids), func(i int) {
		SortLayer(d.Layer(ids[i]), opts)
	})
}

func splitEmpty[D doc.PathData[D]](paths []*doc.Path[D]) (sortable, empty []*doc.Path[D]) {
	for _, p := range paths {
		if p.Data.Len() == 0 {
			empty = append(empty, p)
		} else {
			sortable = append(sortable, p)
		}
	}
	return sortable, empty
}

// greedySort builds the tour: from the current pen position, always pick the
// path with the closest available endpoint, reversing it when its end point
// was picked.
func greedySort[D doc.PathData[D]](paths []*doc.Path[D], flip bool) []*doc.Path[D] {
	ix := newPathIndex(paths, flip)
	out := make([]*doc.Path[D], 0, len(paths))
	pen := geom.Point{}
	for !ix.empty() {
		e := ix.nearest(pen, -1)
		if e == nil {
			break // unreachable, the index is not empty
		}
		ix.remove(e.path)
		p := paths[e.path]
		if e.reversed {
			p.Data.Reverse()
		}
		out = append(out, p)
		pen, _ = p.Data.End()
	}
	return out
}

// twoOpt refines the tour by reversing sub-sequences when this shortens the
// pen-up travel. The pen starts at the origin and the tour is open ended.
// Without flip, only sub-sequences made of closed paths are considered, since
// reversing their order does not change the drawing direction of any path.
func twoOpt[D doc.PathData[D]](paths []*doc.Path[D], flip bool, passes int) {
	n := len(paths)
	starts := make([]geom.Point, n)
	ends := make([]geom.Point, n)
	for i, p := range paths {
		starts[i], _ = p.Data.Start()
		ends[i], _ = p.Data.End()
	}

	const eps = 1e-12
	for pass := 0; pass < passes; pass++ {
		improved := false
		for i := 0; i < n; i++ {
			prev := geom.Point{}
			if i > 0 {
				prev = ends[i-1]
			}
			for j := i; j < n; j++ {
				if !flip && starts[j] != ends[j] {
					break // open path, the sub-sequence cannot be reversed
				}
				// cost of entering and leaving the reversed [i..j] span
				delta := prev.Distance(ends[j]) - prev.Distance(starts[i])
				if j < n-1 {
					delta += starts[i].Distance(starts[j+1]) - ends[j].Distance(starts[j+1])
				}
				if delta < -eps {
					reverseSpan(paths, starts, ends, i, j, flip)
					improved = true
				}
			}
		}
		if !improved {
			return
		}
	}
}

// reverseSpan reverses the order of paths[i..j]. With flip, each path is also
// drawn backwards; without it, all paths in the span are closed and their
// direction is left untouched.
func reverseSpan[D doc.PathData[D]](paths []*doc.Path[D], starts, ends []geom.Point, i, j int, flip bool) {
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		paths[l], paths[r] = paths[r], paths[l]
		starts[l], starts[r] = starts[r], starts[l]
		ends[l], ends[r] = ends[r], ends[l]
	}
	if flip {
		for k := i; k <= j; k++ {
			paths[k].Data.Reverse()
			starts[k], ends[k] = ends[k], starts[k]
		}
	}
}
