package classify

import (
	"github.com/dgallion1/tracemesh/internal/structure"
)

// Pair is one named value found on a path: a plain text attribute, or a
// property (Property non-nil, Name is the property's name).
type Pair struct {
	Name     string
	Text     string
	Property structure.Property
}

// TextPair builds a text attribute pair.
func TextPair(name, text string) Pair {
	return Pair{Name: name, Text: text}
}

// PropertyPair builds a property pair named after the property.
func PropertyPair(p structure.Property) Pair {
	return Pair{Name: p.Name(), Property: p}
}

// GroupNames is the group names the value contributes: the text itself, or
// the property's group names.
func (p Pair) GroupNames() []string {
	if p.Property != nil {
		return p.Property.GroupNames()
	}
	if p.Text == "" {
		return nil
	}
	return []string{p.Text}
}

// PropertiesForPath accumulates what the tree says about the point or
// branch at path. Attributes are shallow merged from the root down with the
// deeper branch winning on a key collision. Properties are collected from
// every branch on the way, root first, and follow the attributes in the
// result.
func PropertiesForPath(root *structure.Branch, path structure.Path) ([]Pair, error) {
	if root == nil {
		return nil, nil
	}
	attrs := root.Attributes.Merge(structure.Attributes{})
	props := append([]structure.Property(nil), root.Properties...)

	b := root
	for depth, idx := range path {
		if idx < 0 || idx >= len(b.Items) {
			return nil, &structure.StructuralError{Path: path[:depth+1], Msg: "path index out of range"}
		}
		item := b.Items[idx]
		last := depth == len(path)-1
		if item.Kind == structure.ItemPoint {
			if !last {
				return nil, &structure.StructuralError{Path: path[:depth+1], Tag: "point", Msg: "path descends through a point"}
			}
			break
		}
		if item.Kind != structure.ItemBranch || item.Branch == nil {
			return nil, &structure.StructuralError{Path: path[:depth+1], Tag: item.Kind.String(), Msg: "tree item is neither a point nor a branch"}
		}
		b = item.Branch
		attrs = attrs.Merge(b.Attributes)
		props = append(props, b.Properties...)
	}

	out := make([]Pair, 0, attrs.Len()+len(props))
	attrs.Each(func(k, v string) {
		out = append(out, TextPair(k, v))
	})
	for _, p := range props {
		out = append(out, PropertyPair(p))
	}
	return out, nil
}
