package resolve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/tracemesh/internal/classify"
	"github.com/dgallion1/tracemesh/internal/structure"
)

// Failure is a structure that could not be resolved.
type Failure struct {
	Structure string `json:"structure"`
	Message   string `json:"error"`
	Err       error  `json:"-"`
}

// Result is the resolution of a whole model. Meshes and Failures are in
// model order: trees, contours, markers, puncta, vessels.
type Result struct {
	Meshes   []*Mesh   `json:"meshes"`
	Failures []Failure `json:"failures,omitempty"`

	// Unknown aggregates the unknown attribute names of every mesh.
	Unknown []string `json:"unknown,omitempty"`
}

// Counts totals nodes, elements and groups across meshes.
func (r *Result) Counts() (nodes, elements, groups int) {
	for _, m := range r.Meshes {
		nodes += len(m.Nodes)
		elements += len(m.Elements)
		groups += len(m.Groups)
	}
	return nodes, elements, groups
}

// Options controls Model.
type Options struct {
	Table *classify.RankTable

	// Limit bounds how many structures resolve at once. Zero or less means
	// one at a time.
	Limit int
}

type task struct {
	name string
	run  func() (*Mesh, error)
}

func tasks(m *structure.Model, table *classify.RankTable) []task {
	var out []task
	for i, t := range m.Trees {
		name := fmt.Sprintf("tree %d", i)
		out = append(out, task{name, func() (*Mesh, error) { return Tree(name, t, table) }})
	}
	for i, c := range m.Contours {
		name := fmt.Sprintf("contour %d", i)
		out = append(out, task{name, func() (*Mesh, error) { return Contour(name, c), nil }})
	}

	var points []*structure.Marker
	var puncta []task
	for i, mk := range m.Markers {
		if mk.Name != PunctumMarker {
			points = append(points, mk)
			continue
		}
		name := fmt.Sprintf("punctum %d", i)
		puncta = append(puncta, task{name, func() (*Mesh, error) { return Punctum(name, mk) }})
	}
	if len(points) > 0 {
		out = append(out, task{"markers", func() (*Mesh, error) { return Markers("markers", points), nil }})
	}
	out = append(out, puncta...)

	for i, v := range m.Vessels {
		name := fmt.Sprintf("vessel %d", i)
		out = append(out, task{name, func() (*Mesh, error) { return Vessel(name, v), nil }})
	}
	return out
}

// Model resolves every structure of m. Structures are independent: one
// failing is recorded in Failures and the rest still resolve. The image
// transform is applied first; if it fails nothing is resolved. The returned
// error is non-nil only for that case or when ctx ends first.
func Model(ctx context.Context, m *structure.Model, opts Options) (*Result, error) {
	scaled, err := m.ApplyImageTransform()
	if err != nil {
		return nil, err
	}
	table := opts.Table
	if table == nil {
		table = classify.DefaultRankTable()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 1
	}

	work := tasks(scaled, table)
	meshes := make([]*Mesh, len(work))
	errs := make([]error, len(work))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, tk := range work {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			meshes[i], errs[i] = tk.run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	seen := make(map[string]bool)
	for i, tk := range work {
		if errs[i] != nil {
			res.Failures = append(res.Failures, Failure{Structure: tk.name, Message: errs[i].Error(), Err: errs[i]})
			continue
		}
		res.Meshes = append(res.Meshes, meshes[i])
		for _, u := range meshes[i].Unknown {
			if !seen[u] {
				seen[u] = true
				res.Unknown = append(res.Unknown, u)
			}
		}
	}
	return res, nil
}
