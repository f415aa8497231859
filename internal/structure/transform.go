package structure

// ApplyImageTransform returns a model whose tree, contour and marker points
// are scaled and offset by the images' common placement. When there are no
// images, or the common scale is unity, the receiver is returned as is. The
// receiver is never modified.
func (m *Model) ApplyImageTransform() (*Model, error) {
	if len(m.Images) == 0 {
		return m, nil
	}
	common := m.Images[0]
	for _, img := range m.Images[1:] {
		if img.Scale != common.Scale && img.Offset != common.Offset {
			return nil, &DataError{Msg: "images do not share a common scale and offset"}
		}
	}
	if common.Scale == [2]float64{1, 1} {
		return m, nil
	}

	out := *m
	tf := func(p Point) Point { return p.transformed(common.Scale, common.Offset) }

	out.Trees = make([]*Tree, len(m.Trees))
	for i, t := range m.Trees {
		cp := *t
		cp.Root = transformBranch(t.Root, tf)
		out.Trees[i] = &cp
	}
	out.Contours = make([]*Contour, len(m.Contours))
	for i, c := range m.Contours {
		cp := *c
		cp.Points = transformPoints(c.Points, tf)
		out.Contours[i] = &cp
	}
	out.Markers = make([]*Marker, len(m.Markers))
	for i, mk := range m.Markers {
		cp := *mk
		cp.Points = transformPoints(mk.Points, tf)
		out.Markers[i] = &cp
	}
	return &out, nil
}

func transformPoints(points []Point, tf func(Point) Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = tf(p)
	}
	return out
}

func transformBranch(b *Branch, tf func(Point) Point) *Branch {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Items = make([]Item, len(b.Items))
	for i, item := range b.Items {
		switch item.Kind {
		case ItemPoint:
			cp.Items[i] = PointItem(tf(item.Point))
		case ItemBranch:
			cp.Items[i] = BranchItem(transformBranch(item.Branch, tf))
		default:
			cp.Items[i] = item
		}
	}
	return &cp
}
