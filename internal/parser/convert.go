package parser

import (
	"fmt"

	"github.com/dgallion1/tracemesh/internal/structure"
)

// converter turns a decoded document into a Structure Model.
type converter struct {
	strict bool
}

func (c converter) model(doc *document) (*structure.Model, error) {
	m := &structure.Model{}
	for i, td := range doc.Trees {
		t, err := c.tree(td)
		if err != nil {
			return nil, structure.InStructure(err, fmt.Sprintf("tree %d", i))
		}
		m.Trees = append(m.Trees, t)
	}
	for i, cd := range doc.Contours {
		ct, err := c.contour(cd)
		if err != nil {
			return nil, structure.InStructure(err, fmt.Sprintf("contour %d", i))
		}
		m.Contours = append(m.Contours, ct)
	}
	for i, md := range doc.Markers {
		mk, err := c.marker(md)
		if err != nil {
			return nil, structure.InStructure(err, fmt.Sprintf("marker %d", i))
		}
		m.Markers = append(m.Markers, mk)
	}
	for i, vd := range doc.Vessels {
		v, err := c.vessel(vd)
		if err != nil {
			return nil, structure.InStructure(err, fmt.Sprintf("vessel %d", i))
		}
		m.Vessels = append(m.Vessels, v)
	}
	for _, id := range doc.Images {
		img := structure.Image{Filename: id.Filename, Scale: [2]float64{1, 1}, Offset: id.Offset}
		if id.Scale != nil {
			img.Scale = *id.Scale
		}
		m.Images = append(m.Images, img)
	}
	return m, nil
}

func colour(hex string) (structure.RGB, error) {
	if hex == "" {
		return structure.RGB{}, nil
	}
	rgb, err := structure.HexToRGB(hex)
	if err != nil {
		return structure.RGB{}, &structure.StructuralError{Tag: "colour", Msg: err.Error()}
	}
	return rgb, nil
}

func (pd pointDoc) point() structure.Point {
	return structure.Point{
		X: pd.X.value, Y: pd.Y.value, Z: pd.Z.value,
		Diameter: pd.D.value,
		Text:     [3]string{pd.X.text, pd.Y.text, pd.Z.text},
	}
}

func points(docs []pointDoc) []structure.Point {
	out := make([]structure.Point, len(docs))
	for i, pd := range docs {
		out[i] = pd.point()
	}
	return out
}

func (c converter) tree(td treeDoc) (*structure.Tree, error) {
	var attrs structure.Attributes
	hex := td.Colour
	if hex != "" {
		attrs.Set("colour", hex)
	}
	if td.Attributes != nil {
		for pair := td.Attributes.Oldest(); pair != nil; pair = pair.Next() {
			attrs.Set(pair.Key, pair.Value)
		}
	}
	if hex == "" {
		hex, _ = attrs.Get("colour")
	}
	rgb, err := colour(hex)
	if err != nil {
		return nil, err
	}
	root, err := c.branch(td.branchDoc, nil)
	if err != nil {
		return nil, err
	}
	root.Attributes = attrs
	return &structure.Tree{RGB: rgb, Root: root}, nil
}

// branch converts a branch and everything below it. Nesting is unwound with
// an explicit stack.
func (c converter) branch(root branchDoc, rootPath structure.Path) (*structure.Branch, error) {
	type frame struct {
		doc  *branchDoc
		out  *structure.Branch
		path structure.Path
	}
	convertOne := func(bd *branchDoc, path structure.Path) (*structure.Branch, error) {
		b := &structure.Branch{Items: make([]structure.Item, 0, len(bd.Items))}
		if bd.Attributes != nil {
			for pair := bd.Attributes.Oldest(); pair != nil; pair = pair.Next() {
				b.Attributes.Set(pair.Key, pair.Value)
			}
		}
		props, err := c.properties(bd.Properties)
		if err != nil {
			return nil, &structure.StructuralError{Path: path, Tag: "property", Msg: err.Error()}
		}
		b.Properties = props
		return b, nil
	}

	top, err := convertOne(&root, rootPath)
	if err != nil {
		return nil, err
	}
	stack := []frame{{doc: &root, out: top, path: rootPath}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range f.doc.Items {
			it := &f.doc.Items[i]
			itemPath := f.path.Append(i)
			switch {
			case it.point != nil:
				f.out.Items = append(f.out.Items, structure.PointItem(it.point.point()))
			case it.branch != nil:
				child, err := convertOne(it.branch, itemPath)
				if err != nil {
					return nil, err
				}
				f.out.Items = append(f.out.Items, structure.BranchItem(child))
				stack = append(stack, frame{doc: it.branch, out: child, path: itemPath})
			default:
				return nil, &structure.StructuralError{Path: itemPath, Tag: it.tag, Msg: "unexpected tree item"}
			}
		}
	}
	return top, nil
}

func (c converter) contour(cd contourDoc) (*structure.Contour, error) {
	rgb, err := colour(cd.Colour)
	if err != nil {
		return nil, err
	}
	props, err := c.properties(cd.Properties)
	if err != nil {
		return nil, err
	}
	return &structure.Contour{
		Name:       cd.Name,
		Colour:     cd.Colour,
		RGB:        rgb,
		Closed:     cd.Closed,
		Resolution: cd.Resolution,
		Points:     points(cd.Points),
		Properties: props,
	}, nil
}

func (c converter) marker(md markerDoc) (*structure.Marker, error) {
	rgb, err := colour(md.Colour)
	if err != nil {
		return nil, err
	}
	props, err := c.properties(md.Properties)
	if err != nil {
		return nil, err
	}
	return &structure.Marker{
		Name:       md.Name,
		Type:       md.Type,
		Colour:     md.Colour,
		RGB:        rgb,
		Varicosity: md.Varicosity,
		Points:     points(md.Points),
		Properties: props,
	}, nil
}

func (c converter) vessel(vd vesselDoc) (*structure.Vessel, error) {
	rgb, err := colour(vd.Colour)
	if err != nil {
		return nil, err
	}
	props, err := c.properties(vd.Properties)
	if err != nil {
		return nil, err
	}
	v := &structure.Vessel{
		Name:       vd.Name,
		Type:       vd.Type,
		Version:    vd.Version,
		Colour:     vd.Colour,
		RGB:        rgb,
		Properties: props,
	}
	if vd.Edges != nil {
		v.Edges = make([]structure.Edge, 0, len(vd.Edges))
	}
	for i, ed := range vd.Edges {
		eprops, err := c.properties(ed.Properties)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		v.Edges = append(v.Edges, structure.Edge{
			ID:         ed.ID,
			Class:      ed.Class,
			Points:     points(ed.Points),
			Properties: eprops,
		})
	}
	return v, nil
}
