package structure

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes is an insertion-ordered set of simple key/value attributes
// scoped to one branch (colour, type, leaf, class...). The zero value is an
// empty set ready to use.
type Attributes struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewAttributes builds attributes from alternating key, value arguments.
// A trailing key without a value is ignored.
func NewAttributes(kv ...string) Attributes {
	var a Attributes
	for i := 0; i+1 < len(kv); i += 2 {
		a.Set(kv[i], kv[i+1])
	}
	return a
}

// Set stores value under key. An existing key keeps its position.
func (a *Attributes) Set(key, value string) {
	if a.m == nil {
		a.m = orderedmap.New[string, string]()
	}
	a.m.Set(key, value)
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (string, bool) {
	if a.m == nil {
		return "", false
	}
	return a.m.Get(key)
}

// Len is the number of attributes.
func (a Attributes) Len() int {
	if a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Each calls fn for every attribute in insertion order.
func (a Attributes) Each(fn func(key, value string)) {
	if a.m == nil {
		return
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Merge returns a copy of a with child's attributes laid over it. On a key
// collision the child's value wins and the key keeps its original position.
func (a Attributes) Merge(child Attributes) Attributes {
	var out Attributes
	a.Each(out.Set)
	child.Each(out.Set)
	return out
}
