package groups

import (
	"fmt"
	"testing"

	"github.com/dgallion1/tracemesh/internal/classify"
	"github.com/dgallion1/tracemesh/internal/connectivity"
	"github.com/dgallion1/tracemesh/internal/nodeid"
	"github.com/dgallion1/tracemesh/internal/structure"
)

func pt(x float64) structure.Item {
	return structure.PointItem(structure.NewPoint(x, 0, 0, 2))
}

func assertIDs(t *testing.T, what string, want, got []int) {
	t.Helper()
	if fmt.Sprint(want) != fmt.Sprint(got) {
		t.Errorf("%s: expected %v, got %v", what, want, got)
	}
}

// assertRoundTrip checks every grouped id refers to an emitted node or element.
func assertRoundTrip(t *testing.T, s *Set, nodeCount, elementCount int) {
	t.Helper()
	for _, g := range s.List() {
		for _, id := range g.Nodes {
			if id < 1 || id > nodeCount {
				t.Errorf("group %q: node %d not emitted", g.Name, id)
			}
		}
		for _, id := range g.Elements {
			if id < 1 || id > elementCount {
				t.Errorf("group %q: element %d not emitted", g.Name, id)
			}
		}
	}
}

func buildTree(t *testing.T, root *structure.Branch) (*Set, *nodeid.TreeNodes, *connectivity.TreeResult) {
	t.Helper()
	nodes, err := nodeid.ResolveTree(root)
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	conn, err := connectivity.Tree(root, nodes)
	if err != nil {
		t.Fatalf("unexpected connectivity error: %v", err)
	}
	set, err := Tree(root, nodes, conn, classify.DefaultRankTable())
	if err != nil {
		t.Fatalf("unexpected group error: %v", err)
	}
	return set, nodes, conn
}

func TestTree_BranchGroupIncludesAttachment(t *testing.T) {
	root := &structure.Branch{
		Attributes: structure.NewAttributes("type", "Dendrite", "colour", "#FF0000", "weird", "x"),
		Items: []structure.Item{
			pt(1), pt(2),
			structure.BranchItem(&structure.Branch{
				Attributes: structure.NewAttributes("type", "Axon"),
				Items:      []structure.Item{pt(3), pt(4)},
			}),
		},
	}
	set, nodes, conn := buildTree(t, root)

	dendrite, ok := set.Get("Dendrite")
	if !ok {
		t.Fatal("expected Dendrite group")
	}
	assertIDs(t, "Dendrite nodes", []int{1, 2}, dendrite.Nodes)
	assertIDs(t, "Dendrite elements", []int{1, 2}, dendrite.Elements)

	axon, ok := set.Get("Axon")
	if !ok {
		t.Fatal("expected Axon group")
	}
	assertIDs(t, "Axon nodes", []int{2, 3, 4}, axon.Nodes)
	assertIDs(t, "Axon elements", []int{2, 3}, axon.Elements)

	if u := set.Unknown(); len(u) != 1 || u[0] != "weird" {
		t.Errorf("expected unknown [weird], got %v", u)
	}
	if _, ok := set.Get("#FF0000"); ok {
		t.Error("expected metadata colour not to form a group")
	}
	assertRoundTrip(t, set, nodes.Resolver.Len(), len(conn.Edges))
}

func TestTree_SameNameMergesAcrossBranches(t *testing.T) {
	root := &structure.Branch{
		Attributes: structure.NewAttributes("type", "Dendrite"),
		Items: []structure.Item{
			pt(1), pt(2),
			structure.BranchItem(&structure.Branch{Items: []structure.Item{pt(3)}}),
			structure.BranchItem(&structure.Branch{Items: []structure.Item{pt(4)}}),
		},
	}
	set, nodes, conn := buildTree(t, root)
	if set.Len() != 1 {
		t.Fatalf("expected 1 group, got %v", set.Names())
	}
	g, _ := set.Get("Dendrite")
	assertIDs(t, "nodes", []int{1, 2, 3, 4}, g.Nodes)
	assertIDs(t, "elements", []int{1, 2, 3}, g.Elements)
	assertRoundTrip(t, set, nodes.Resolver.Len(), len(conn.Edges))
}

func TestTree_SetPropertyExpandsToGroups(t *testing.T) {
	root := &structure.Branch{
		Properties: []structure.Property{structure.Set{Items: []string{"left", "right"}}},
		Items:      []structure.Item{pt(1), pt(2)},
	}
	set, _, _ := buildTree(t, root)
	names := set.Names()
	if len(names) != 2 || names[0] != "left" || names[1] != "right" {
		t.Errorf("expected groups [left right], got %v", names)
	}
}

func TestTree_NoGroupAttributes(t *testing.T) {
	root := &structure.Branch{
		Attributes: structure.NewAttributes("leaf", "Normal"),
		Items:      []structure.Item{pt(1), pt(2)},
	}
	set, _, _ := buildTree(t, root)
	if set.Len() != 0 {
		t.Errorf("expected no groups, got %v", set.Names())
	}
}

func TestContour_NameAndTextProperties(t *testing.T) {
	c := &structure.Contour{
		Name:   "Heart",
		Closed: true,
		Properties: []structure.Property{
			structure.TraceAssociation{Label: "atrium"},
			structure.GUID{Value: "g-1"},
			structure.FillDensity{Value: 3},
		},
	}
	edges := connectivity.Contour([]int{1, 2, 3}, true)
	set := Contour(c, []int{1, 2, 3}, edges)
	names := set.Names()
	if fmt.Sprint(names) != "[Heart atrium g-1]" {
		t.Fatalf("expected [Heart atrium g-1], got %v", names)
	}
	for _, g := range set.List() {
		assertIDs(t, g.Name+" nodes", []int{1, 2, 3}, g.Nodes)
		assertIDs(t, g.Name+" elements", []int{1, 2, 3}, g.Elements)
	}
}

func TestVessel_SourceAndVesselGroups(t *testing.T) {
	a, b, c, d := structure.NewPoint(0, 0, 0, 1), structure.NewPoint(1, 0, 0, 1), structure.NewPoint(2, 0, 0, 1), structure.NewPoint(3, 0, 0, 1)
	v := &structure.Vessel{
		Properties: []structure.Property{structure.TraceAssociation{Label: "aorta"}},
		Edges: []structure.Edge{
			{ID: "0", Class: "artery", Points: []structure.Point{a, b, c}},
			{ID: "1", Points: []structure.Point{c, b}},
			{Points: []structure.Point{c, d}, Properties: []structure.Property{structure.TraceAssociation{Label: "branch"}}},
		},
	}
	res := connectivity.Vessel(v)
	set := Vessel(res)

	want := map[string][]int{
		"edge_id_0": {1, 2},
		"artery":    {1, 2},
		"edge_id_X": {3},
		"branch":    {3},
		"aorta":     {1, 2, 3},
	}
	if set.Len() != len(want) {
		t.Fatalf("expected %d groups, got %v", len(want), set.Names())
	}
	for name, elements := range want {
		g, ok := set.Get(name)
		if !ok {
			t.Errorf("expected group %q", name)
			continue
		}
		assertIDs(t, name, elements, g.Elements)
		if len(g.Nodes) != 0 {
			t.Errorf("expected %q to hold no nodes, got %v", name, g.Nodes)
		}
	}
	if _, ok := set.Get("edge_id_1"); ok {
		t.Error("expected edge with only duplicate segments to form no group")
	}
	assertRoundTrip(t, set, res.Nodes.Len(), len(res.Edges))
}

func TestMarkers(t *testing.T) {
	set := Markers([]MarkerNode{{ID: 1, Name: "soma"}, {ID: 2, Name: "bead"}, {ID: 3, Name: "soma"}})
	all, ok := set.Get(MarkerGroup)
	if !ok {
		t.Fatal("expected marker group")
	}
	assertIDs(t, "marker", []int{1, 2, 3}, all.Nodes)
	soma, ok := set.Get("soma")
	if !ok {
		t.Fatal("expected repeated name to form a group")
	}
	assertIDs(t, "soma", []int{1, 3}, soma.Nodes)
	if _, ok := set.Get("bead"); ok {
		t.Error("expected single-use name not to form a group")
	}
}

func TestSet_MergeUnions(t *testing.T) {
	a := New()
	a.Add("g", []int{3, 1}, []int{2})
	a.NoteUnknown("x")
	b := New()
	b.Add("g", []int{1, 5}, nil)
	b.Add("h", nil, []int{7})
	b.NoteUnknown("x", "y")
	a.Merge(b)

	g, _ := a.Get("g")
	assertIDs(t, "g nodes", []int{1, 3, 5}, g.Nodes)
	assertIDs(t, "g elements", []int{2}, g.Elements)
	if fmt.Sprint(a.Names()) != "[g h]" {
		t.Errorf("expected [g h], got %v", a.Names())
	}
	if fmt.Sprint(a.Unknown()) != "[x y]" {
		t.Errorf("expected unknown [x y], got %v", a.Unknown())
	}
	a.Add("", []int{1}, nil)
	if a.Len() != 2 {
		t.Errorf("expected empty name to be ignored, got %d groups", a.Len())
	}
}
