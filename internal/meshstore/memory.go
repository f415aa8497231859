package meshstore

import (
	"context"
	"sort"
	"sync"
)

// Memory is a Store held in process memory.
type Memory struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

func (m *Memory) PutMesh(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *Memory) GetMesh(_ context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *Memory) DeleteMesh(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// ListMeshes returns summaries, most recently stored first.
func (m *Memory) ListMeshes(_ context.Context) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Summary, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec.Summarize())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoredAt.Equal(out[j].StoredAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StoredAt.After(out[j].StoredAt)
	})
	return out, nil
}

func (m *Memory) Close() {}
