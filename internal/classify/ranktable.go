// Package classify accumulates the attributes and properties inherited along
// a path through a tree and classifies them against a rank table into group
// and metadata attributes.
package classify

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Category is the classification of an attribute name.
type Category string

const (
	CategoryGroup    Category = "group"
	CategoryMetadata Category = "metadata"
)

// Rank is a rank table entry.
type Rank struct {
	Category Category `yaml:"category"`
	Rank     int      `yaml:"rank"`
}

// RankTable maps attribute names to their category and priority rank.
type RankTable struct {
	Version    int             `yaml:"version"`
	Attributes map[string]Rank `yaml:"attributes"`
}

//go:embed ranktable.yaml
var defaultRankTable []byte

// DefaultRankTable returns the embedded table.
func DefaultRankTable() *RankTable {
	t, err := ParseRankTable(defaultRankTable)
	if err != nil {
		panic(fmt.Sprintf("classify: embedded rank table: %v", err))
	}
	return t
}

// ParseRankTable decodes and validates a YAML rank table.
func ParseRankTable(data []byte) (*RankTable, error) {
	var t RankTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode rank table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadRankTable reads a YAML rank table from r.
func LoadRankTable(r io.Reader) (*RankTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rank table: %w", err)
	}
	return ParseRankTable(data)
}

// LoadRankTableFile reads the table at path, or returns the embedded table
// when path is empty.
func LoadRankTableFile(path string) (*RankTable, error) {
	if path == "" {
		return DefaultRankTable(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rank table: %w", err)
	}
	defer f.Close()
	return LoadRankTable(f)
}

// Validate checks that every category is known and that ranks are unique
// within each category.
func (t *RankTable) Validate() error {
	seen := map[Category]map[int]string{}
	names := make([]string, 0, len(t.Attributes))
	for name := range t.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := t.Attributes[name]
		if r.Category != CategoryGroup && r.Category != CategoryMetadata {
			return fmt.Errorf("rank table: attribute %q has unknown category %q", name, r.Category)
		}
		if seen[r.Category] == nil {
			seen[r.Category] = map[int]string{}
		}
		if other, dup := seen[r.Category][r.Rank]; dup {
			return fmt.Errorf("rank table: %q and %q share %s rank %d", other, name, r.Category, r.Rank)
		}
		seen[r.Category][r.Rank] = name
	}
	return nil
}

// Lookup returns the entry for name.
func (t *RankTable) Lookup(name string) (Rank, bool) {
	if t == nil {
		return Rank{}, false
	}
	r, ok := t.Attributes[name]
	return r, ok
}
