package resolve

import (
	"github.com/dgallion1/tracemesh/internal/classify"
	"github.com/dgallion1/tracemesh/internal/connectivity"
	"github.com/dgallion1/tracemesh/internal/groups"
	"github.com/dgallion1/tracemesh/internal/nodeid"
	"github.com/dgallion1/tracemesh/internal/structure"
)

func elements(edges []connectivity.Edge) []Element {
	out := make([]Element, len(edges))
	for i, e := range edges {
		out[i] = Element{ID: connectivity.ElementID(i), Nodes: [2]int{e.From, e.To}}
	}
	return out
}

func resolvedNodes(r *nodeid.Resolver, rgb structure.RGB) []Node {
	nodes := r.Nodes()
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = nodeFor(n.ID, n.Point, rgb)
	}
	return out
}

// Tree resolves one tree.
func Tree(name string, t *structure.Tree, table *classify.RankTable) (*Mesh, error) {
	nodes, err := nodeid.ResolveTree(t.Root)
	if err != nil {
		return nil, structure.InStructure(err, name)
	}
	conn, err := connectivity.Tree(t.Root, nodes)
	if err != nil {
		return nil, structure.InStructure(err, name)
	}
	set, err := groups.Tree(t.Root, nodes, conn, table)
	if err != nil {
		return nil, structure.InStructure(err, name)
	}

	m := newMesh(name, KindTree)
	m.Nodes = resolvedNodes(nodes.Resolver, t.RGB)
	m.Elements = elements(conn.Edges)
	m.setGroups(set)
	return m, nil
}

// Contour resolves one contour.
func Contour(name string, c *structure.Contour) *Mesh {
	ids, r := nodeid.ResolveContour(c.Points)
	edges := connectivity.Contour(ids, c.Closed)

	m := newMesh(name, KindContour)
	m.Nodes = resolvedNodes(r, c.RGB)
	if c.Resolution != nil {
		for i := range m.Nodes {
			res := *c.Resolution
			m.Nodes[i].Resolution = &res
		}
	}
	m.Elements = elements(edges)

	nodeIDs := make([]int, r.Len())
	for i := range nodeIDs {
		nodeIDs[i] = i + 1
	}
	m.setGroups(groups.Contour(c, nodeIDs, edges))
	return m
}

// Vessel resolves one vessel. A vessel without edges yields an empty mesh.
func Vessel(name string, v *structure.Vessel) *Mesh {
	res := connectivity.Vessel(v)

	m := newMesh(name, KindVessel)
	m.Nodes = resolvedNodes(res.Nodes, v.RGB)
	m.Elements = elements(res.Edges)
	m.setGroups(groups.Vessel(res))
	return m
}

// Markers resolves point markers into one datapoint mesh. Every point is
// its own node; markers are never deduplicated or connected.
func Markers(name string, markers []*structure.Marker) *Mesh {
	m := newMesh(name, KindMarkers)
	m.NodeSet = NodeSetDatapoints

	var named []groups.MarkerNode
	for _, mk := range markers {
		for _, p := range mk.Points {
			id := len(m.Nodes) + 1
			n := nodeFor(id, p, mk.RGB)
			n.MarkerName = mk.Name
			m.Nodes = append(m.Nodes, n)
			named = append(named, groups.MarkerNode{ID: id, Name: mk.Name})
		}
	}
	m.setGroups(groups.Markers(named))
	return m
}

// PunctumMarker is the marker name that denotes a punctum volume rather
// than a set of points.
const PunctumMarker = "Punctum"

// Punctum resolves a punctum marker into a volume. The marker must carry
// both a Punctum and a VolumeRLE property.
func Punctum(name string, mk *structure.Marker) (*Mesh, error) {
	var (
		punctum *structure.Punctum
		rle     *structure.VolumeRLE
		set     *structure.Set
	)
	for _, p := range mk.Properties {
		switch v := p.(type) {
		case structure.Punctum:
			punctum = &v
		case structure.VolumeRLE:
			rle = &v
		case structure.Set:
			set = &v
		}
	}
	if punctum == nil || rle == nil {
		return nil, &structure.DataError{Structure: name, Msg: "punctum requires Punctum and VolumeRLE properties"}
	}
	if punctum.Flag2D {
		return nil, &structure.DataError{Structure: name, Msg: "2D punctum is not implemented"}
	}
	values, err := rle.Values()
	if err != nil {
		return nil, structure.InStructure(err, name)
	}

	m := newMesh(name, KindPunctum)
	m.NodeSet = ""
	m.Volume = &Volume{
		VoxelCounts: rle.Counts,
		TotalVoxels: rle.TotalVoxels(),
		Origin:      rle.Origin,
		Corners:     rle.Corners(),
		Values:      values,
	}
	if set != nil && len(set.Items) == 1 && set.Items[0] != "" {
		m.Groups = []groups.Group{{Name: set.Items[0], Elements: []int{1}}}
	}
	return m, nil
}
