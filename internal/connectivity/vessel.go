package connectivity

import (
	"github.com/dgallion1/tracemesh/internal/nodeid"
	"github.com/dgallion1/tracemesh/internal/structure"
)

// SourceGroup describes the labels one source edge (or the vessel itself)
// contributes. Empty labels are not groups.
type SourceGroup struct {
	ID               string
	Class            string
	TraceAssociation string
}

// Labels returns the non-empty labels of the descriptor: id, class, then
// trace association.
func (g SourceGroup) Labels() []string {
	var out []string
	for _, l := range []string{g.ID, g.Class, g.TraceAssociation} {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// VesselResult is the connectivity of one vessel.
type VesselResult struct {
	Edges []Edge

	// EdgeSource holds, per element, the index into Sources of the source
	// edge that first produced it.
	EdgeSource []int
	Sources    []SourceGroup

	// Vessel carries vessel-level labels that apply to every element.
	Vessel SourceGroup

	Nodes *nodeid.Resolver
}

// Vessel resolves node ids across the whole vessel and walks each source
// edge pairwise. Zero-length segments are skipped, and a segment already
// produced in either direction by any edge is not emitted again. A vessel
// without an edges collection yields an empty result.
func Vessel(v *structure.Vessel) *VesselResult {
	perEdge, r := nodeid.ResolveVessel(v)
	out := &VesselResult{Nodes: r}
	if ta, ok := structure.FindTraceAssociation(v.Properties); ok {
		out.Vessel.TraceAssociation = ta.Label
	}

	seen := make(map[[2]int]struct{})
	for i, e := range v.Edges {
		src := SourceGroup{ID: edgeLabel(e.ID), Class: e.Class}
		if ta, ok := structure.FindTraceAssociation(e.Properties); ok {
			src.TraceAssociation = ta.Label
		}
		srcIdx := len(out.Sources)
		out.Sources = append(out.Sources, src)

		previous := 0
		for _, id := range perEdge[i] {
			if previous != 0 && previous != id {
				edge := Edge{From: previous, To: id}
				if _, dup := seen[edge.key()]; !dup {
					seen[edge.key()] = struct{}{}
					out.Edges = append(out.Edges, edge)
					out.EdgeSource = append(out.EdgeSource, srcIdx)
				}
			}
			previous = id
		}
	}
	return out
}

func edgeLabel(id string) string {
	if id == "" {
		id = "X"
	}
	return "edge_id_" + id
}
