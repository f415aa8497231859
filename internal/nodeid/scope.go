package nodeid

import (
	"github.com/dgallion1/tracemesh/internal/structure"
)

// Assignment is the id given to the point at Path.
type Assignment struct {
	Path structure.Path
	ID   int
}

// TreeNodes is the node assignment of one tree, in depth-first traversal
// order.
type TreeNodes struct {
	Assignments []Assignment
	byPath      map[string]int
	Resolver    *Resolver
}

// ID returns the node id assigned to the point at path.
func (t *TreeNodes) ID(path structure.Path) (int, bool) {
	id, ok := t.byPath[path.Key()]
	return id, ok
}

// ResolveTree assigns node ids to every point of a tree in a fresh scope.
func ResolveTree(root *structure.Branch) (*TreeNodes, error) {
	r := New()
	out := &TreeNodes{byPath: make(map[string]int), Resolver: r}
	err := structure.WalkPoints(root, func(path structure.Path, p structure.Point) error {
		id := r.Resolve(p)
		out.Assignments = append(out.Assignments, Assignment{Path: path, ID: id})
		out.byPath[path.Key()] = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveContour assigns node ids to a contour's points in a fresh scope.
func ResolveContour(points []structure.Point) ([]int, *Resolver) {
	r := New()
	return r.Points(points), r
}

// ResolveVessel assigns node ids across every edge of a vessel in one
// shared scope, edges in declaration order. The result holds one id slice
// per edge.
func ResolveVessel(v *structure.Vessel) ([][]int, *Resolver) {
	r := New()
	perEdge := make([][]int, len(v.Edges))
	for i, e := range v.Edges {
		perEdge[i] = r.Points(e.Points)
	}
	return perEdge, r
}
