package structure

import (
	"errors"
	"testing"
)

func TestPoint_Radius(t *testing.T) {
	p := NewPoint(1, 2, 4, 5)
	if p.Radius() != 2.5 {
		t.Errorf("expected radius 2.5, got %v", p.Radius())
	}
	if p.Coordinates() != [3]float64{1, 2, 4} {
		t.Errorf("expected coordinates [1 2 4], got %v", p.Coordinates())
	}
}

func TestPoint_KeyUsesSourceText(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3, Text: [3]string{"1", "2", "3"}}
	b := Point{X: 1, Y: 2, Z: 3, Text: [3]string{"1.0", "2", "3"}}
	if a.Key() == b.Key() {
		t.Errorf("expected differently written coordinates to produce distinct keys, both %q", a.Key())
	}

	c := NewPoint(1, 2, 3, 0)
	if c.Key() != "1,2,3" {
		t.Errorf("expected key %q, got %q", "1,2,3", c.Key())
	}
	if c.Key() != a.Key() {
		t.Errorf("expected float fallback %q to match text %q", c.Key(), a.Key())
	}
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	base := Path{1, 2}
	a := base.Append(3)
	b := base.Append(4)
	if a.Key() != "1.2.3" || b.Key() != "1.2.4" {
		t.Errorf("expected 1.2.3 and 1.2.4, got %s and %s", a.Key(), b.Key())
	}
	if a.Parent().Key() != "1.2" {
		t.Errorf("expected parent 1.2, got %s", a.Parent().Key())
	}
	if (Path{}).Parent().Key() != "" {
		t.Error("expected parent of root to be root")
	}
}

func TestWalkPoints_DepthFirstOrder(t *testing.T) {
	root := &Branch{Items: []Item{
		PointItem(NewPoint(1, 0, 0, 0)),
		BranchItem(&Branch{Items: []Item{
			PointItem(NewPoint(2, 0, 0, 0)),
			BranchItem(&Branch{Items: []Item{PointItem(NewPoint(3, 0, 0, 0))}}),
		}}),
		BranchItem(&Branch{Items: []Item{PointItem(NewPoint(4, 0, 0, 0))}}),
	}}

	var paths []string
	var xs []float64
	err := WalkPoints(root, func(path Path, p Point) error {
		paths = append(paths, path.Key())
		xs = append(xs, p.X)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPaths := []string{"0", "1.0", "1.1.0", "2.0"}
	if len(paths) != len(wantPaths) {
		t.Fatalf("expected %d points, got %d", len(wantPaths), len(paths))
	}
	for i := range wantPaths {
		if paths[i] != wantPaths[i] {
			t.Errorf("point %d: expected path %s, got %s", i, wantPaths[i], paths[i])
		}
		if xs[i] != float64(i+1) {
			t.Errorf("point %d: expected x=%d, got %v", i, i+1, xs[i])
		}
	}
}

func TestWalkPoints_InvalidItem(t *testing.T) {
	root := &Branch{Items: []Item{PointItem(NewPoint(0, 0, 0, 0)), {Kind: ItemBranch}}}
	err := WalkPoints(root, func(Path, Point) error { return nil })
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if se.Path.Key() != "1" {
		t.Errorf("expected offending path 1, got %s", se.Path.Key())
	}
}

func TestAttributes_MergeChildWins(t *testing.T) {
	parent := NewAttributes("colour", "#FF0000", "type", "Dendrite", "leaf", "Normal")
	child := NewAttributes("type", "Axon", "class", "thin")
	merged := parent.Merge(child)

	var keys []string
	merged.Each(func(k, _ string) { keys = append(keys, k) })
	want := []string{"colour", "type", "leaf", "class"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
	if v, _ := merged.Get("type"); v != "Axon" {
		t.Errorf("expected child type to win, got %q", v)
	}
	if v, _ := parent.Get("type"); v != "Dendrite" {
		t.Errorf("expected parent to be untouched, got %q", v)
	}
}

func TestAttributes_ZeroValue(t *testing.T) {
	var a Attributes
	if a.Len() != 0 {
		t.Errorf("expected empty attributes, got %d", a.Len())
	}
	if _, ok := a.Get("x"); ok {
		t.Error("expected missing key on zero value")
	}
	a.Set("x", "1")
	if v, ok := a.Get("x"); !ok || v != "1" {
		t.Errorf("expected x=1, got %q", v)
	}
}

func TestProperty_GroupNames(t *testing.T) {
	cases := []struct {
		prop Property
		want []string
	}{
		{Set{Items: []string{"a", "", "b", "c"}}, []string{"a", "b", "c"}},
		{TraceAssociation{Label: "http://uri.interlex.org/base/ilx_0794774"}, []string{"http://uri.interlex.org/base/ilx_0794774"}},
		{GUID{Value: "abc-123"}, []string{"abc-123"}},
		{Generic{PropertyName: "Note", Fields: []GenericField{{Type: "n", Value: "3"}, {Type: "s", Value: "left"}}}, []string{"left"}},
		{Generic{PropertyName: "Count", Fields: []GenericField{{Type: "n", Value: "3"}}}, nil},
		{Channel{Version: 2, Number: 1}, nil},
		{FillDensity{Value: 0.3}, nil},
		{TreeOrder{Order: 2}, nil},
		{Punctum{}, nil},
		{VolumeRLE{}, nil},
	}
	for _, tc := range cases {
		got := tc.prop.GroupNames()
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.prop.Name(), tc.want, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: expected %v, got %v", tc.prop.Name(), tc.want, got)
			}
		}
	}
}

func TestFindTraceAssociation_LastWins(t *testing.T) {
	props := []Property{TraceAssociation{Label: "first"}, Set{Items: []string{"x"}}, TraceAssociation{Label: "second"}}
	ta, ok := FindTraceAssociation(props)
	if !ok || ta.Label != "second" {
		t.Errorf("expected second, got %q (ok=%v)", ta.Label, ok)
	}
	if _, ok := FindTraceAssociation(nil); ok {
		t.Error("expected no trace association in empty list")
	}
}

func TestHexToRGB(t *testing.T) {
	rgb, err := HexToRGB("#FF0080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rgb[0] != 1.0 || rgb[1] != 0.0 || rgb[2] != 128.0/255.0 {
		t.Errorf("unexpected rgb %v", rgb)
	}
	if _, err := HexToRGB("#GG0000"); err == nil {
		t.Error("expected error for invalid hex digits")
	}
	if _, err := HexToRGB("#FFF"); err == nil {
		t.Error("expected error for short colour")
	}
}

func TestVolumeRLE_Corners(t *testing.T) {
	v, err := ParseVolumeDescription("1 1 1 4 2 2 2 0 0 0 4 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	corners := v.Corners()
	want := [8][3]float64{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5},
	}
	for i := range want {
		if corners[i] != want[i] {
			t.Errorf("corner %d: expected %v, got %v", i, want[i], corners[i])
		}
	}
}

func TestVolumeRLE_ValuesPadded(t *testing.T) {
	v, err := ParseVolumeDescription("1 1 1 2 2 2 1 0 0 0 1 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, err := v.Values()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.25, 1, 1, 0}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("value %d: expected %v, got %v", i, want[i], values[i])
		}
	}
}

func TestVolumeRLE_RunsExceedTotal(t *testing.T) {
	v, err := ParseVolumeDescription("1 1 1 2 1 1 2 0 0 0 2 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = v.Values()
	var de *DataError
	if !errors.As(err, &de) {
		t.Fatalf("expected DataError, got %v", err)
	}
	if de.Have != 5 || de.Want != 2 {
		t.Errorf("expected have=5 want=2, got have=%d want=%d", de.Have, de.Want)
	}
}

func TestParseVolumeDescription_TooShort(t *testing.T) {
	_, err := ParseVolumeDescription("1 1 1")
	var de *DataError
	if !errors.As(err, &de) {
		t.Fatalf("expected DataError, got %v", err)
	}
}

func TestParseVolumeDescription_InvalidCounts(t *testing.T) {
	cases := map[string]string{
		"negative count":   "1 1 1 0 -1 1 1 0 0 0",
		"oversized volume": "1 1 1 0 100000 100000 100 0 0 0",
		"fractional count": "1 1 1 0 1.5 1 1 0 0 0",
		"non-finite count": "1 1 1 0 Inf 1 1 0 0 0",
		"negative run":     "1 1 1 0 2 1 1 0 0 0 1 -1",
	}
	for name, desc := range cases {
		_, err := ParseVolumeDescription(desc)
		var de *DataError
		if !errors.As(err, &de) {
			t.Errorf("%s: expected DataError, got %v", name, err)
		}
	}
}

func TestVolumeRLE_ValuesInvalidCounts(t *testing.T) {
	cases := map[string]VolumeRLE{
		"negative count":   {Counts: [3]float64{-1, 1, 1}},
		"oversized volume": {Counts: [3]float64{1e6, 1e6, 1}},
		"negative run":     {Counts: [3]float64{2, 1, 1}, Runs: []int{-1}},
	}
	for name, v := range cases {
		values, err := v.Values()
		var de *DataError
		if !errors.As(err, &de) {
			t.Errorf("%s: expected DataError, got %v", name, err)
		}
		if values != nil {
			t.Errorf("%s: expected no values, got %d", name, len(values))
		}
		if n := v.TotalVoxels(); n != 0 {
			t.Errorf("%s: expected 0 total voxels, got %d", name, n)
		}
	}
}

func TestApplyImageTransform(t *testing.T) {
	m := &Model{
		Contours: []*Contour{{Name: "c", Points: []Point{NewPoint(1, 2, 3, 1)}}},
		Trees:    []*Tree{{Root: &Branch{Items: []Item{PointItem(NewPoint(1, 1, 1, 1))}}}},
		Images:   []Image{{Scale: [2]float64{2, 3}, Offset: [3]float64{10, 20, 30}}},
	}
	out, err := m.ApplyImageTransform()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.Contours[0].Points[0]
	if got.X != 12 || got.Y != 26 || got.Z != 33 {
		t.Errorf("unexpected transformed contour point %+v", got)
	}
	tp := out.Trees[0].Root.Items[0].Point
	if tp.X != 12 || tp.Y != 23 || tp.Z != 31 {
		t.Errorf("unexpected transformed tree point %+v", tp)
	}
	if m.Contours[0].Points[0].X != 1 {
		t.Error("expected source model to be untouched")
	}
}

func TestApplyImageTransform_Conflicting(t *testing.T) {
	m := &Model{Images: []Image{
		{Scale: [2]float64{2, 2}, Offset: [3]float64{1, 1, 1}},
		{Scale: [2]float64{3, 3}, Offset: [3]float64{2, 2, 2}},
	}}
	if _, err := m.ApplyImageTransform(); err == nil {
		t.Error("expected error for conflicting image placement")
	}
}

func TestInStructure(t *testing.T) {
	err := InStructure(&StructuralError{Msg: "bad"}, "tree 3")
	var se *StructuralError
	if !errors.As(err, &se) || se.Structure != "tree 3" {
		t.Errorf("expected structure label, got %v", err)
	}
	plain := errors.New("x")
	if InStructure(plain, "tree 1") != plain {
		t.Error("expected unrelated errors to pass through")
	}
}
