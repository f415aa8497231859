package classify

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/tracemesh/internal/structure"
)

func sampleTable() *RankTable {
	return &RankTable{Attributes: map[string]Rank{
		"type":  {Category: CategoryGroup, Rank: 0},
		"class": {Category: CategoryGroup, Rank: 1},
		"layer": {Category: CategoryMetadata, Rank: 0},
		"Set":   {Category: CategoryGroup, Rank: 3},
	}}
}

func TestClassify_PrimaryMetadataUnknown(t *testing.T) {
	pairs := []Pair{TextPair("type", "Dendrite"), TextPair("layer", "L1"), TextPair("weird", "x")}
	res := Classify(pairs, sampleTable())

	if !res.HasPrimary || res.PrimaryName() != "Dendrite" {
		t.Errorf("expected primary group Dendrite, got %q", res.PrimaryName())
	}
	if res.Metadata.Len() != 1 {
		t.Fatalf("expected 1 metadata attribute, got %d", res.Metadata.Len())
	}
	if v, _ := res.Metadata.Get("layer"); v.Text != "L1" {
		t.Errorf("expected layer=L1, got %q", v.Text)
	}
	if len(res.Unknown) != 1 || res.Unknown[0] != "weird" {
		t.Errorf("expected unknown [weird], got %v", res.Unknown)
	}
}

func TestClassify_LowestRankWins(t *testing.T) {
	pairs := []Pair{TextPair("class", "thin"), TextPair("type", "Axon")}
	res := Classify(pairs, sampleTable())
	if res.PrimaryName() != "Axon" {
		t.Errorf("expected Axon to outrank thin, got %q", res.PrimaryName())
	}
	if res.Group.Len() != 2 {
		t.Errorf("expected 2 group attributes, got %d", res.Group.Len())
	}
}

func TestClassify_TieKeepsFirstSeen(t *testing.T) {
	pairs := []Pair{TextPair("type", "First"), TextPair("type", "Second")}
	res := Classify(pairs, sampleTable())
	if res.PrimaryName() != "First" {
		t.Errorf("expected first seen value on a tie, got %q", res.PrimaryName())
	}
	if v, _ := res.Group.Get("type"); v.Text != "Second" {
		t.Errorf("expected last value to win in the group map, got %q", v.Text)
	}
}

func TestClassify_UnknownDeduplicated(t *testing.T) {
	pairs := []Pair{TextPair("b", "1"), TextPair("a", "1"), TextPair("b", "2")}
	res := Classify(pairs, sampleTable())
	if len(res.Unknown) != 2 || res.Unknown[0] != "b" || res.Unknown[1] != "a" {
		t.Errorf("expected unknown [b a], got %v", res.Unknown)
	}
	if res.HasPrimary {
		t.Error("expected no primary group")
	}
}

func TestExpand_SetYieldsEveryItem(t *testing.T) {
	pairs := []Pair{
		TextPair("type", "Dendrite"),
		PropertyPair(structure.Set{Items: []string{"a", "b", "c"}}),
	}
	res := Classify(pairs, sampleTable())
	names := Expand(res.Group)
	want := []string{"Dendrite", "a", "b", "c"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func tree() *structure.Branch {
	inner := &structure.Branch{
		Attributes: structure.NewAttributes("type", "Axon"),
		Properties: []structure.Property{structure.TraceAssociation{Label: "vagus"}},
		Items:      []structure.Item{structure.PointItem(structure.NewPoint(2, 0, 0, 1))},
	}
	mid := &structure.Branch{
		Attributes: structure.NewAttributes("class", "thick"),
		Items: []structure.Item{
			structure.PointItem(structure.NewPoint(1, 0, 0, 1)),
			structure.BranchItem(inner),
		},
	}
	return &structure.Branch{
		Attributes: structure.NewAttributes("colour", "#00FF00", "type", "Dendrite", "leaf", "Normal"),
		Properties: []structure.Property{structure.Set{Items: []string{"root-set"}}},
		Items: []structure.Item{
			structure.PointItem(structure.NewPoint(0, 0, 0, 1)),
			structure.BranchItem(mid),
		},
	}
}

func TestPropertiesForPath_InheritsDownThePath(t *testing.T) {
	pairs, err := PropertiesForPath(tree(), structure.Path{1, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, p := range pairs {
		if p.Property != nil {
			got = append(got, p.Name+"*")
		} else {
			got = append(got, p.Name+"="+p.Text)
		}
	}
	want := "colour=#00FF00,type=Axon,leaf=Normal,class=thick,Set*,TraceAssociation*"
	if strings.Join(got, ",") != want {
		t.Errorf("expected %s, got %s", want, strings.Join(got, ","))
	}
}

func TestPropertiesForPath_RootPoint(t *testing.T) {
	pairs, err := PropertiesForPath(tree(), structure.Path{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 4 {
		t.Fatalf("expected root attributes and property only, got %d pairs", len(pairs))
	}
	if pairs[1].Text != "Dendrite" {
		t.Errorf("expected root type Dendrite, got %q", pairs[1].Text)
	}
}

func TestPropertiesForPath_BadPath(t *testing.T) {
	_, err := PropertiesForPath(tree(), structure.Path{0, 1})
	var se *structure.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if _, err := PropertiesForPath(tree(), structure.Path{9}); err == nil {
		t.Error("expected error for out of range path")
	}
}

func TestDefaultRankTable(t *testing.T) {
	table := DefaultRankTable()
	if r, ok := table.Lookup("type"); !ok || r.Category != CategoryGroup || r.Rank != 0 {
		t.Errorf("expected type to be group rank 0, got %+v", r)
	}
	if r, ok := table.Lookup("colour"); !ok || r.Category != CategoryMetadata {
		t.Errorf("expected colour to be metadata, got %+v", r)
	}
}

func TestRankTable_UniqueRanksWithinCategory(t *testing.T) {
	ranks := map[Category]map[int]bool{}
	for name, r := range DefaultRankTable().Attributes {
		if ranks[r.Category] == nil {
			ranks[r.Category] = map[int]bool{}
		}
		if ranks[r.Category][r.Rank] {
			t.Errorf("rank %d reused in category %s by %q", r.Rank, r.Category, name)
		}
		ranks[r.Category][r.Rank] = true
	}
}

func TestParseRankTable_RejectsDuplicateRank(t *testing.T) {
	data := []byte("attributes:\n  a: {category: group, rank: 1}\n  b: {category: group, rank: 1}\n")
	if _, err := ParseRankTable(data); err == nil {
		t.Error("expected duplicate rank to be rejected")
	}
}

func TestParseRankTable_RejectsUnknownCategory(t *testing.T) {
	data := []byte("attributes:\n  a: {category: colour, rank: 1}\n")
	if _, err := ParseRankTable(data); err == nil {
		t.Error("expected unknown category to be rejected")
	}
}

func TestLoadRankTable_SameRankAcrossCategories(t *testing.T) {
	data := "version: 2\nattributes:\n  a: {category: group, rank: 0}\n  b: {category: metadata, rank: 0}\n"
	table, err := LoadRankTable(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Version != 2 || len(table.Attributes) != 2 {
		t.Errorf("unexpected table %+v", table)
	}
}

func TestLoadRankTableFile_EmptyPathUsesDefault(t *testing.T) {
	table, err := LoadRankTableFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.Lookup("TraceAssociation"); !ok {
		t.Error("expected default table")
	}
}
