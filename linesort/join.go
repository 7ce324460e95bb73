package linesort

import (
	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/internal/parallel"
)

// JoinLayer merges paths whose endpoints are within tolerance (inclusive) of
// each other into single paths, removing pen-up moves entirely. Starting
// from the first path, the closest joinable path is appended repeatedly;
// when none remains in range, the chain is emitted and the next unconsumed
// path seeds a new one. With flip, paths may be reversed so that their end
// point is used for the junction. The merged path keeps the metadata of the
// chain's first path.
func JoinLayer[D doc.PathData[D]](l *doc.Layer[D], tolerance float64, flip bool) {
	joinable, empty := splitEmpty(l.Paths)
	if len(joinable) > 1 {
		joinable = joinChains(joinable, tolerance, flip)
	}
	l.Paths = append(joinable, empty...)
}

// JoinDocument joins the paths of every layer, concurrently.
func JoinDocument[D doc.PathData[D]](d *doc.Document[D], tolerance float64, flip bool) {
	ids := d.LayerIDs()
	parallel.ForEach(len(ids), func(i int) {
		JoinLayer(d.Layer(ids[i]), tolerance, flip)
	})
}

func joinChains[D doc.PathData[D]](paths []*doc.Path[D], tolerance float64, flip bool) []*doc.Path[D] {
	ix := newPathIndex(paths, flip)
	var out []*doc.Path[D]
	for seed := 0; seed < len(paths); seed++ {
		if ix.entries[seed] == nil {
			continue // already consumed by an earlier chain
		}
		ix.remove(seed)
		chain := paths[seed]
		for {
			end, _ := chain.Data.End()
			e := ix.nearest(end, tolerance)
			if e == nil {
				break
			}
			ix.remove(e.path)
			next := paths[e.path]
			if e.reversed {
				next.Data.Reverse()
			}
			chain.Data.Join(next.Data)
		}
		out = append(out, chain)
	}
	return out
}
