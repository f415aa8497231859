// Package nodeid assigns integer node identities to traced points,
// collapsing points with identical coordinate text into one node.
//
// A Resolver is one dedup scope. Trees and contours get a fresh resolver
// each; a vessel shares one resolver across all of its edges so that edges
// meeting at a point share that node.
package nodeid

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dgallion1/tracemesh/internal/structure"
)

// Node is one resolved spatial location. Point is the first point seen at
// that location.
type Node struct {
	ID    int
	Point structure.Point
}

// Resolver holds the coordinate-key to id map of a single dedup scope.
// Ids start at 1 and increase in first-seen order. A Resolver is not safe
// for concurrent use; resolve independent structures with independent
// resolvers.
type Resolver struct {
	ids   *orderedmap.OrderedMap[string, int]
	nodes []Node
}

// New returns an empty scope.
func New() *Resolver {
	return &Resolver{ids: orderedmap.New[string, int]()}
}

// Resolve returns the node id for p, allocating the next id when p's
// coordinates have not been seen in this scope.
func (r *Resolver) Resolve(p structure.Point) int {
	key := p.Key()
	if id, ok := r.ids.Get(key); ok {
		return id
	}
	id := len(r.nodes) + 1
	r.ids.Set(key, id)
	r.nodes = append(r.nodes, Node{ID: id, Point: p})
	return id
}

// Len is the number of distinct nodes.
func (r *Resolver) Len() int {
	return len(r.nodes)
}

// Nodes returns the resolved nodes ordered by id.
func (r *Resolver) Nodes() []Node {
	out := make([]Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// Points resolves a flat point sequence, returning one id per point.
func (r *Resolver) Points(points []structure.Point) []int {
	ids := make([]int, len(points))
	for i, p := range points {
		ids[i] = r.Resolve(p)
	}
	return ids
}
