// Package resolve turns parsed structures into meshes: deduplicated nodes,
// line elements and named groups, ready to hand to a mesh store.
package resolve

import (
	"github.com/dgallion1/tracemesh/internal/groups"
	"github.com/dgallion1/tracemesh/internal/structure"
)

// Kind is the kind of structure a mesh was built from.
type Kind string

const (
	KindTree    Kind = "tree"
	KindContour Kind = "contour"
	KindVessel  Kind = "vessel"
	KindMarkers Kind = "markers"
	KindPunctum Kind = "punctum"
)

// Node sets a mesh's nodes are written to.
const (
	NodeSetNodes      = "nodes"
	NodeSetDatapoints = "datapoints"
)

// Node is one resolved node with its field values.
type Node struct {
	ID          int           `json:"id"`
	Coordinates [3]float64    `json:"coordinates"`
	Radius      float64       `json:"radius"`
	RGB         structure.RGB `json:"rgb"`
	Resolution  *float64      `json:"resolution,omitempty"`
	MarkerName  string        `json:"marker_name,omitempty"`
}

// Element is one line element between two nodes of the same mesh.
type Element struct {
	ID    int    `json:"id"`
	Nodes [2]int `json:"nodes"`
}

// Volume is the hexahedral grid of one punctum.
type Volume struct {
	VoxelCounts [3]float64    `json:"voxel_counts"`
	TotalVoxels int           `json:"total_voxels"`
	Origin      [3]float64    `json:"origin"`
	Corners     [8][3]float64 `json:"corners"`
	Values      []float64     `json:"values"`
}

// Mesh is the resolved form of one structure.
type Mesh struct {
	Structure string         `json:"structure"`
	Kind      Kind           `json:"kind"`
	NodeSet   string         `json:"node_set,omitempty"`
	Nodes     []Node         `json:"nodes,omitempty"`
	Elements  []Element      `json:"elements,omitempty"`
	Groups    []groups.Group `json:"groups,omitempty"`
	Volume    *Volume        `json:"volume,omitempty"`

	// Unknown lists attribute names the rank table did not classify.
	Unknown []string `json:"unknown,omitempty"`
}

func newMesh(name string, kind Kind) *Mesh {
	return &Mesh{Structure: name, Kind: kind, NodeSet: NodeSetNodes}
}

func (m *Mesh) setGroups(set *groups.Set) {
	m.Groups = set.List()
	m.Unknown = set.Unknown()
}

func nodeFor(id int, p structure.Point, rgb structure.RGB) Node {
	return Node{ID: id, Coordinates: p.Coordinates(), Radius: p.Radius(), RGB: rgb}
}
