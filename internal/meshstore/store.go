// Package meshstore persists resolved meshes. It has an in-memory store for
// single-process use and an HTTP client for a remote mesh store.
package meshstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/tracemesh/internal/resolve"
)

// ErrNotFound is returned when a mesh id is not stored.
var ErrNotFound = errors.New("mesh not found")

// Record is the stored resolution of one uploaded document.
type Record struct {
	ID          string            `json:"mesh_id"`
	Filename    string            `json:"filename"`
	ContentHash string            `json:"content_hash,omitempty"`
	Meshes      []*resolve.Mesh   `json:"meshes"`
	Failures    []resolve.Failure `json:"failures,omitempty"`
	Unknown     []string          `json:"unknown,omitempty"`
	StoredAt    time.Time         `json:"stored_at"`
}

// Summary describes a stored record without its meshes.
type Summary struct {
	ID         string    `json:"mesh_id"`
	Filename   string    `json:"filename"`
	Structures int       `json:"structures"`
	Nodes      int       `json:"nodes"`
	Elements   int       `json:"elements"`
	Groups     int       `json:"groups"`
	StoredAt   time.Time `json:"stored_at"`
}

// Summarize totals a record's meshes.
func (r *Record) Summarize() Summary {
	res := resolve.Result{Meshes: r.Meshes}
	nodes, elements, groups := res.Counts()
	return Summary{
		ID:         r.ID,
		Filename:   r.Filename,
		Structures: len(r.Meshes),
		Nodes:      nodes,
		Elements:   elements,
		Groups:     groups,
		StoredAt:   r.StoredAt,
	}
}

// Store is where resolved meshes are written. Implementations serialize
// concurrent writes themselves.
type Store interface {
	PutMesh(ctx context.Context, rec *Record) error
	// GetMesh returns nil and no error when id is not stored.
	GetMesh(ctx context.Context, id string) (*Record, error)
	DeleteMesh(ctx context.Context, id string) error
	ListMeshes(ctx context.Context) ([]Summary, error)
	Close()
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
