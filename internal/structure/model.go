// Package structure holds the parsed model of traced entities: branching
// trees, contours, markers and vessels. Values in this package are produced
// once by a parser and treated as read-only by everything downstream.
package structure

import (
	"strconv"
	"strings"
)

// RGB is a colour with components in [0, 1].
type RGB [3]float64

// Point is one traced spatial sample.
type Point struct {
	X, Y, Z  float64
	Diameter float64

	// Text keeps the literal coordinate text a point was decoded from.
	// Empty entries fall back to the shortest decimal form of the float.
	Text [3]string
}

// NewPoint builds a point with no source text.
func NewPoint(x, y, z, diameter float64) Point {
	return Point{X: x, Y: y, Z: z, Diameter: diameter}
}

// Radius is half the traced diameter.
func (p Point) Radius() float64 {
	return p.Diameter / 2.0
}

// Coordinates returns x, y, z.
func (p Point) Coordinates() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

// Key is the deduplication key for the point: the decimal text of its three
// coordinates. Numerically equal coordinates written differently ("1" and
// "1.0") produce different keys.
func (p Point) Key() string {
	c := p.Coordinates()
	parts := make([]string, 3)
	for i := range c {
		if p.Text[i] != "" {
			parts[i] = p.Text[i]
		} else {
			parts[i] = strconv.FormatFloat(c[i], 'g', -1, 64)
		}
	}
	return strings.Join(parts, ",")
}

// transformed returns the point scaled in x/y and then offset. Source text is
// dropped, the new key is derived from the transformed floats.
func (p Point) transformed(scale [2]float64, offset [3]float64) Point {
	return Point{
		X:        p.X*scale[0] + offset[0],
		Y:        p.Y*scale[1] + offset[1],
		Z:        p.Z + offset[2],
		Diameter: p.Diameter,
	}
}

// ItemKind tags the variant held by an Item.
type ItemKind uint8

const (
	ItemPoint ItemKind = iota + 1
	ItemBranch
)

func (k ItemKind) String() string {
	switch k {
	case ItemPoint:
		return "point"
	case ItemBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Item is one child of a Branch: a Point or a nested Branch.
type Item struct {
	Kind   ItemKind
	Point  Point
	Branch *Branch
}

// PointItem wraps a point as a branch child.
func PointItem(p Point) Item {
	return Item{Kind: ItemPoint, Point: p}
}

// BranchItem wraps a sub-branch as a branch child.
func BranchItem(b *Branch) Item {
	return Item{Kind: ItemBranch, Branch: b}
}

// Branch is a recursive node of a tree. The tree root is itself a Branch.
type Branch struct {
	Items      []Item
	Attributes Attributes
	Properties []Property
}

// Tree is one traced branching structure (dendrite, axon, nerve...).
// Tree-level attributes such as colour, type and leaf live on Root.
type Tree struct {
	RGB  RGB
	Root *Branch
}

// Contour is a flat, optionally closed, sequence of points.
type Contour struct {
	Name       string
	Colour     string
	RGB        RGB
	Closed     bool
	Resolution *float64
	Points     []Point
	Properties []Property
}

// Marker is a named set of unconnected points.
type Marker struct {
	Name       string
	Type       string
	Colour     string
	RGB        RGB
	Varicosity bool
	Points     []Point
	Properties []Property
}

// Edge is one traced segment list of a vessel.
type Edge struct {
	ID         string
	Class      string
	Points     []Point
	Properties []Property
}

// Vessel is a graph traced as a list of directed edges. A nil Edges slice
// means the vessel carried no edges collection at all.
type Vessel struct {
	Name       string
	Type       string
	Version    string
	Colour     string
	RGB        RGB
	Edges      []Edge
	Properties []Property
}

// Image describes a source image the tracing was made against.
type Image struct {
	Filename string
	Scale    [2]float64
	Offset   [3]float64
}

// Model is one parsed document.
type Model struct {
	Trees    []*Tree
	Contours []*Contour
	Markers  []*Marker
	Vessels  []*Vessel
	Images   []Image
}

// Len is the number of structures in the model.
func (m *Model) Len() int {
	return len(m.Trees) + len(m.Contours) + len(m.Markers) + len(m.Vessels)
}
