// Package groups builds named subsets of a structure's nodes and elements
// from the attributes and properties found on it.
package groups

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Group is one named subset. Ids are ascending and unique.
type Group struct {
	Name     string `json:"name"`
	Nodes    []int  `json:"nodes,omitempty"`
	Elements []int  `json:"elements,omitempty"`
}

type members struct {
	nodes    map[int]struct{}
	elements map[int]struct{}
}

// Set collects groups by name in first-seen order. Adding to an existing
// name unions the ids; nothing is ever removed. The zero value is not
// usable, call New.
type Set struct {
	byName      *orderedmap.OrderedMap[string, *members]
	unknown     []string
	seenUnknown map[string]bool
}

// New returns an empty set.
func New() *Set {
	return &Set{
		byName:      orderedmap.New[string, *members](),
		seenUnknown: make(map[string]bool),
	}
}

// Add unions nodes and elements into the group called name. An empty name
// is ignored.
func (s *Set) Add(name string, nodes, elements []int) {
	if name == "" {
		return
	}
	m, ok := s.byName.Get(name)
	if !ok {
		m = &members{nodes: make(map[int]struct{}), elements: make(map[int]struct{})}
		s.byName.Set(name, m)
	}
	for _, id := range nodes {
		m.nodes[id] = struct{}{}
	}
	for _, id := range elements {
		m.elements[id] = struct{}{}
	}
}

// NoteUnknown records attribute names absent from the rank table. Each name
// is kept once, in order of first appearance.
func (s *Set) NoteUnknown(names ...string) {
	for _, n := range names {
		if !s.seenUnknown[n] {
			s.seenUnknown[n] = true
			s.unknown = append(s.unknown, n)
		}
	}
}

// Unknown returns the aggregated unknown attribute names.
func (s *Set) Unknown() []string {
	return append([]string(nil), s.unknown...)
}

// Merge adds every group and unknown name of other into s.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, g := range other.List() {
		s.Add(g.Name, g.Nodes, g.Elements)
	}
	s.NoteUnknown(other.unknown...)
}

// Len is the number of groups.
func (s *Set) Len() int {
	return s.byName.Len()
}

// Names returns the group names in first-seen order.
func (s *Set) Names() []string {
	out := make([]string, 0, s.byName.Len())
	for pair := s.byName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Get returns the group called name.
func (s *Set) Get(name string) (Group, bool) {
	m, ok := s.byName.Get(name)
	if !ok {
		return Group{}, false
	}
	return m.group(name), true
}

// List returns every group in first-seen order.
func (s *Set) List() []Group {
	out := make([]Group, 0, s.byName.Len())
	for pair := s.byName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.group(pair.Key))
	}
	return out
}

func (m *members) group(name string) Group {
	return Group{Name: name, Nodes: sortedIDs(m.nodes), Elements: sortedIDs(m.elements)}
}

func sortedIDs(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// elementRange is the element ids 1..n.
func elementRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
