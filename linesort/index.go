// Package linesort reorders, reorients and merges the paths of a layer to
// reduce the pen-up travel of a plot.
package linesort

import (
	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
	"github.com/dhconnelly/rtreego"
)

// endpointTol is the extent of the degenerate rectangles used to index
// endpoints in the R-tree.
const endpointTol = 1e-9

// maxCandidates bounds the nearest neighbor queries. It only has to be large
// enough to disambiguate ties on the exact distance.
const maxCandidates = 8

// endpoint is one end of an indexed path. When reversed is true, it is the
// last point and picking it up means drawing the path backwards.
type endpoint struct {
	pt       geom.Point
	path     int // index in the order the paths were registered
	reversed bool
	rect     rtreego.Rect
}

func (e *endpoint) Bounds() rtreego.Rect { return e.rect }

// pathIndex is a spatial index over the endpoints of a set of paths,
// supporting stable nearest queries and whole path removal.
type pathIndex struct {
	tree    *rtreego.Rtree
	entries [][]*endpoint
	left    int
}

// newPathIndex indexes the start point of each path. When bidir is set, the
// end point is indexed as well (unless it coincides with the start), allowing
// paths to be picked up from either side. Every path must be non empty.
func newPathIndex[D doc.PathData[D]](paths []*doc.Path[D], bidir bool) *pathIndex {
	ix := &pathIndex{
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make([][]*endpoint, len(paths)),
	}
	for i, p := range paths {
		start, _ := p.Data.Start()
		ix.add(&endpoint{pt: start, path: i})
		if end, _ := p.Data.End(); bidir && end != start {
			ix.add(&endpoint{pt: end, path: i, reversed: true})
		}
		ix.left++
	}
	return ix
}

func (ix *pathIndex) add(e *endpoint) {
	e.rect = rtreego.Point{e.pt.X, e.pt.Y}.ToRect(endpointTol)
	ix.entries[e.path] = append(ix.entries[e.path], e)
	ix.tree.Insert(e)
}

// empty reports whether all paths have been removed.
func (ix *pathIndex) empty() bool { return ix.left == 0 }

// nearest returns the closest endpoint to pt, or nil when the index is empty
// or the closest one is farther than maxDist (negative means unbounded).
// Exact ties are broken towards the lowest path index, forward before
// reversed, so that queries are deterministic.
func (ix *pathIndex) nearest(pt geom.Point, maxDist float64) *endpoint {
	found := ix.tree.NearestNeighbors(maxCandidates, rtreego.Point{pt.X, pt.Y})
	var best *endpoint
	var bestDist float64
	for _, sp := range found {
		e, ok := sp.(*endpoint)
		if !ok || e == nil {
			continue
		}
		d := pt.Distance(e.pt)
		if best == nil || d < bestDist ||
			(d == bestDist && (e.path < best.path ||
				(e.path == best.path && !e.reversed && best.reversed))) {
			best, bestDist = e, d
		}
	}
	if best == nil || (maxDist >= 0 && bestDist > maxDist) {
		return nil
	}
	return best
}

// remove deletes all the endpoints of the given path.
func (ix *pathIndex) remove(path int) {
	for _, e := range ix.entries[path] {
		ix.tree.Delete(e)
	}
	ix.entries[path] = nil
	ix.left--
}
