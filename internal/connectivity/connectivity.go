// Package connectivity derives line elements between resolved nodes for the
// three traced topologies: branching trees, contours and vessel graphs.
package connectivity

import "fmt"

// Edge is one line element from node From to node To.
type Edge struct {
	From int
	To   int
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.From, e.To)
}

// key is the undirected form of an edge.
func (e Edge) key() [2]int {
	if e.From < e.To {
		return [2]int{e.From, e.To}
	}
	return [2]int{e.To, e.From}
}

// ElementID is the 1-based element id of the edge at index i of a
// connectivity list.
func ElementID(i int) int {
	return i + 1
}

// NodeElements maps each node id to the element ids incident on it, in
// element order.
func NodeElements(edges []Edge) map[int][]int {
	out := make(map[int][]int)
	for i, e := range edges {
		id := ElementID(i)
		out[e.From] = append(out[e.From], id)
		if e.To != e.From {
			out[e.To] = append(out[e.To], id)
		}
	}
	return out
}
