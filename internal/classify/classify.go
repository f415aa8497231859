package classify

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Values is an insertion-ordered name to value map. A repeated name keeps
// its first position and takes the last value.
type Values struct {
	m *orderedmap.OrderedMap[string, Pair]
}

func newValues() Values {
	return Values{m: orderedmap.New[string, Pair]()}
}

func (v Values) set(p Pair) {
	v.m.Set(p.Name, p)
}

// Get returns the value stored under name.
func (v Values) Get(name string) (Pair, bool) {
	if v.m == nil {
		return Pair{}, false
	}
	return v.m.Get(name)
}

// Len is the number of names.
func (v Values) Len() int {
	if v.m == nil {
		return 0
	}
	return v.m.Len()
}

// Pairs returns the values in order.
func (v Values) Pairs() []Pair {
	if v.m == nil {
		return nil
	}
	out := make([]Pair, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Result is the classification of the pairs found on one path.
type Result struct {
	Group    Values
	Metadata Values

	// Unknown lists names absent from the rank table, in order of first
	// appearance. It is diagnostic only.
	Unknown []string

	// Primary is the group value with the lowest rank. HasPrimary is false
	// when no group attribute was present.
	Primary    Pair
	HasPrimary bool
}

// PrimaryName is the display name of the primary group.
func (r Result) PrimaryName() string {
	if !r.HasPrimary {
		return ""
	}
	if names := r.Primary.GroupNames(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// Classify sorts pairs into group and metadata values using table. The
// group value with the numerically lowest rank becomes the primary group,
// the first one seen on a tie.
func Classify(pairs []Pair, table *RankTable) Result {
	res := Result{Group: newValues(), Metadata: newValues()}
	seenUnknown := make(map[string]bool)
	primaryRank := 0

	for _, p := range pairs {
		rank, ok := table.Lookup(p.Name)
		if !ok {
			if !seenUnknown[p.Name] {
				seenUnknown[p.Name] = true
				res.Unknown = append(res.Unknown, p.Name)
			}
			continue
		}
		switch rank.Category {
		case CategoryGroup:
			res.Group.set(p)
			if !res.HasPrimary || rank.Rank < primaryRank {
				res.Primary, res.HasPrimary, primaryRank = p, true, rank.Rank
			}
		case CategoryMetadata:
			res.Metadata.set(p)
		}
	}
	return res
}

// Expand turns group values into group names: a text value names one group
// and a property names each of its group names.
func Expand(group Values) []string {
	var names []string
	for _, p := range group.Pairs() {
		names = append(names, p.GroupNames()...)
	}
	return names
}
