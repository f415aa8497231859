package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// The interchange document. Field names are shared by the JSON and YAML
// forms.

type document struct {
	Trees    []treeDoc    `json:"trees" yaml:"trees"`
	Contours []contourDoc `json:"contours" yaml:"contours"`
	Markers  []markerDoc  `json:"markers" yaml:"markers"`
	Vessels  []vesselDoc  `json:"vessels" yaml:"vessels"`
	Images   []imageDoc   `json:"images" yaml:"images"`
}

type attributesDoc = *orderedmap.OrderedMap[string, string]

type branchDoc struct {
	Attributes attributesDoc `json:"attributes" yaml:"attributes"`
	Properties []propertyDoc `json:"properties" yaml:"properties"`
	Items      []itemDoc     `json:"items" yaml:"items"`
}

type treeDoc struct {
	Colour    string `json:"colour" yaml:"colour"`
	branchDoc `yaml:",inline"`
}

type contourDoc struct {
	Name       string        `json:"name" yaml:"name"`
	Colour     string        `json:"colour" yaml:"colour"`
	Closed     bool          `json:"closed" yaml:"closed"`
	Resolution *float64      `json:"resolution" yaml:"resolution"`
	Points     []pointDoc    `json:"points" yaml:"points"`
	Properties []propertyDoc `json:"properties" yaml:"properties"`
}

type markerDoc struct {
	Name       string        `json:"name" yaml:"name"`
	Type       string        `json:"type" yaml:"type"`
	Colour     string        `json:"colour" yaml:"colour"`
	Varicosity bool          `json:"varicosity" yaml:"varicosity"`
	Points     []pointDoc    `json:"points" yaml:"points"`
	Properties []propertyDoc `json:"properties" yaml:"properties"`
}

type edgeDoc struct {
	ID         string        `json:"id" yaml:"id"`
	Class      string        `json:"class" yaml:"class"`
	Points     []pointDoc    `json:"points" yaml:"points"`
	Properties []propertyDoc `json:"properties" yaml:"properties"`
}

type vesselDoc struct {
	Name       string        `json:"name" yaml:"name"`
	Type       string        `json:"type" yaml:"type"`
	Version    string        `json:"version" yaml:"version"`
	Colour     string        `json:"colour" yaml:"colour"`
	Edges      []edgeDoc     `json:"edges" yaml:"edges"`
	Properties []propertyDoc `json:"properties" yaml:"properties"`
}

type imageDoc struct {
	Filename string      `json:"filename" yaml:"filename"`
	Scale    *[2]float64 `json:"scale" yaml:"scale"`
	Offset   [3]float64  `json:"offset" yaml:"offset"`
}

type pointDoc struct {
	X coord `json:"x" yaml:"x"`
	Y coord `json:"y" yaml:"y"`
	Z coord `json:"z" yaml:"z"`
	D coord `json:"d" yaml:"d"`
}

type fieldDoc struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// propertyDoc holds the union of every property variant's fields; Name
// selects which ones apply.
type propertyDoc struct {
	Name string `json:"name" yaml:"name"`

	// Channel, Punctum
	Version float64 `json:"version" yaml:"version"`
	Number  float64 `json:"number" yaml:"number"`
	Colour  string  `json:"colour" yaml:"colour"`

	Spread              float64 `json:"spread" yaml:"spread"`
	MeanLuminance       float64 `json:"mean_luminance" yaml:"mean_luminance"`
	SurfaceArea         float64 `json:"surface_area" yaml:"surface_area"`
	VoxelCount          float64 `json:"voxel_count" yaml:"voxel_count"`
	Flag2D              bool    `json:"flag_2d" yaml:"flag_2d"`
	Volume              float64 `json:"volume" yaml:"volume"`
	Location            float64 `json:"location" yaml:"location"`
	ColocalizedFraction float64 `json:"colocalized_fraction" yaml:"colocalized_fraction"`
	ProximalFraction    float64 `json:"proximal_fraction" yaml:"proximal_fraction"`

	// VolumeRLE
	Description string `json:"description" yaml:"description"`

	Items   []string   `json:"items" yaml:"items"`
	Label   string     `json:"label" yaml:"label"`
	Value   string     `json:"value" yaml:"value"`
	Density float64    `json:"density" yaml:"density"`
	Order   int        `json:"order" yaml:"order"`
	Fields  []fieldDoc `json:"fields" yaml:"fields"`
}

// coord is a number that remembers the text it was written as.
type coord struct {
	value float64
	text  string
}

func (c *coord) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("coordinate %q: %w", n, err)
	}
	c.value, c.text = f, n.String()
	return nil
}

func (c *coord) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: coordinate must be a number", node.Line)
	}
	text := strings.TrimSpace(node.Value)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("line %d: coordinate %q: %w", node.Line, text, err)
	}
	c.value, c.text = f, text
	return nil
}

// itemDoc is one tagged tree item: {"point": {...}} or {"branch": {...}}.
// Any other single tag is kept so conversion can report where it was.
type itemDoc struct {
	tag    string
	point  *pointDoc
	branch *branchDoc
}

const (
	tagPoint  = "point"
	tagBranch = "branch"
)

func (it *itemDoc) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("tree item: %w", err)
	}
	if len(raw) != 1 {
		it.tag = fmt.Sprintf("<%d tags>", len(raw))
		return nil
	}
	for tag, body := range raw {
		it.tag = tag
		switch tag {
		case tagPoint:
			it.point = &pointDoc{}
			return json.Unmarshal(body, it.point)
		case tagBranch:
			it.branch = &branchDoc{}
			return json.Unmarshal(body, it.branch)
		}
	}
	return nil
}

func (it *itemDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: tree item must be a mapping", node.Line)
	}
	if len(node.Content) != 2 {
		it.tag = fmt.Sprintf("<%d tags>", len(node.Content)/2)
		return nil
	}
	key, body := node.Content[0], node.Content[1]
	it.tag = key.Value
	switch key.Value {
	case tagPoint:
		it.point = &pointDoc{}
		return body.Decode(it.point)
	case tagBranch:
		it.branch = &branchDoc{}
		return body.Decode(it.branch)
	}
	return nil
}
