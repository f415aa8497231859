package groups

import (
	"github.com/dgallion1/tracemesh/internal/classify"
	"github.com/dgallion1/tracemesh/internal/connectivity"
	"github.com/dgallion1/tracemesh/internal/nodeid"
	"github.com/dgallion1/tracemesh/internal/structure"
)

// Tree builds the groups of one tree. Points are grouped by the branch
// that directly holds them. For each such branch the attributes and
// properties inherited down to its first point are classified, and every
// resulting group name receives the branch's nodes, the node the branch was
// attached to, and every element incident on the branch's own nodes.
func Tree(root *structure.Branch, nodes *nodeid.TreeNodes, conn *connectivity.TreeResult, table *classify.RankTable) (*Set, error) {
	out := New()
	if root == nil || nodes == nil {
		return out, nil
	}

	type pointList struct {
		first   structure.Path
		parent  structure.Path
		nodeIDs []int
	}
	lists := map[string]*pointList{}
	var order []string
	for _, a := range nodes.Assignments {
		parent := a.Path.Parent()
		key := parent.Key()
		l, ok := lists[key]
		if !ok {
			l = &pointList{first: a.Path, parent: parent}
			lists[key] = l
			order = append(order, key)
		}
		l.nodeIDs = append(l.nodeIDs, a.ID)
	}

	var incident map[int][]int
	if conn != nil {
		incident = connectivity.NodeElements(conn.Edges)
	}

	for _, key := range order {
		l := lists[key]
		pairs, err := classify.PropertiesForPath(root, l.first)
		if err != nil {
			return nil, err
		}
		res := classify.Classify(pairs, table)
		out.NoteUnknown(res.Unknown...)

		names := classify.Expand(res.Group)
		if len(names) == 0 {
			continue
		}

		memberNodes := append([]int(nil), l.nodeIDs...)
		if conn != nil {
			if attach, ok := conn.Attach[l.parent.Key()]; ok {
				memberNodes = append(memberNodes, attach)
			}
		}
		var elements []int
		for _, id := range l.nodeIDs {
			elements = append(elements, incident[id]...)
		}
		for _, name := range names {
			out.Add(name, memberNodes, elements)
		}
	}
	return out, nil
}

// Contour builds the groups of one contour: its name, and each group name
// its properties carry, all holding every node and element of the contour.
func Contour(c *structure.Contour, nodeIDs []int, edges []connectivity.Edge) *Set {
	out := New()
	elements := elementRange(len(edges))
	out.Add(c.Name, nodeIDs, elements)
	for _, name := range structure.TextGroupNames(c.Properties) {
		out.Add(name, nodeIDs, elements)
	}
	return out
}

// Vessel builds the element groups of one vessel. Every label of a source
// edge descriptor names a group of the elements that edge produced; a
// vessel-level trace association names a group of all elements.
func Vessel(res *connectivity.VesselResult) *Set {
	out := New()
	perSource := make([][]int, len(res.Sources))
	for i, src := range res.EdgeSource {
		perSource[src] = append(perSource[src], connectivity.ElementID(i))
	}
	for i, src := range res.Sources {
		if len(perSource[i]) == 0 {
			continue
		}
		for _, label := range src.Labels() {
			out.Add(label, nil, perSource[i])
		}
	}
	if len(res.Edges) > 0 {
		for _, label := range res.Vessel.Labels() {
			out.Add(label, nil, elementRange(len(res.Edges)))
		}
	}
	return out
}

// MarkerNode is one resolved marker point.
type MarkerNode struct {
	ID   int
	Name string
}

// MarkerGroup is the group every marker node joins.
const MarkerGroup = "marker"

// Markers groups marker nodes: every node joins MarkerGroup, and a marker
// name held by more than one node also names a group of those nodes.
func Markers(nodes []MarkerNode) *Set {
	out := New()
	if len(nodes) == 0 {
		return out
	}
	all := make([]int, 0, len(nodes))
	byName := New()
	counts := map[string]int{}
	for _, n := range nodes {
		all = append(all, n.ID)
		byName.Add(n.Name, []int{n.ID}, nil)
		counts[n.Name]++
	}
	out.Add(MarkerGroup, all, nil)
	for _, g := range byName.List() {
		if counts[g.Name] > 1 {
			out.Add(g.Name, g.Nodes, nil)
		}
	}
	return out
}
