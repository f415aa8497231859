package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/tracemesh/internal/classify"
	"github.com/dgallion1/tracemesh/internal/meshstore"
	"github.com/dgallion1/tracemesh/internal/parser"
	"github.com/dgallion1/tracemesh/internal/resolve"
)

// Worker processes a single document job.
type Worker struct {
	store     meshstore.Store
	table     *classify.RankTable
	stats     *ResolveStats
	log       *slog.Logger
	parseOpts parser.Options

	maxConcurrentResolve int
	backoff              func(attempt int) time.Duration
}

func NewWorker(store meshstore.Store, table *classify.RankTable, stats *ResolveStats, log *slog.Logger, parseOpts parser.Options, maxResolve int) *Worker {
	return &Worker{
		store:                store,
		table:                table,
		stats:                stats,
		log:                  log,
		parseOpts:            parseOpts,
		maxConcurrentResolve: maxResolve,
		backoff:              Backoff,
	}
}

func finish(job *Job, status JobStatus, phase string) {
	job.SetStatus(status, phase)
	jobsTotal.WithLabelValues(string(status)).Inc()
}

// structureKind is the leading word of a structure name ("tree 2" -> "tree").
func structureKind(name string) string {
	if kind, _, ok := strings.Cut(name, " "); ok {
		return kind
	}
	return name
}

// Process runs the full resolution pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "mesh_id", job.MeshID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parseOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		finish(job, StatusFailed, "parsing")
		return
	}

	model, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	job.releaseFileData()
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		finish(job, StatusFailed, "parsing")
		return
	}
	job.SetStructures(model.Len())
	log.Info("parsed document",
		"trees", len(model.Trees),
		"contours", len(model.Contours),
		"markers", len(model.Markers),
		"vessels", len(model.Vessels),
	)
	if model.Len() == 0 {
		log.Warn("no structures in document")
		job.AddError("no structures to resolve")
		finish(job, StatusFailed, "parsing")
		return
	}

	// Phase 2: Resolve
	job.SetStatus(StatusResolving, "resolving")
	start := time.Now()
	res, err := resolve.Model(ctx, model, resolve.Options{Table: w.table, Limit: w.maxConcurrentResolve})
	elapsed := time.Since(start)
	if err != nil {
		log.Error("resolve failed", "error", err)
		job.AddError(fmt.Sprintf("resolve: %s", err))
		finish(job, StatusFailed, "resolving")
		return
	}
	resolveDuration.Observe(elapsed.Seconds())

	for _, f := range res.Failures {
		log.Error("structure failed", "structure", f.Structure, "error", f.Err)
		job.AddError(f.Message)
		structuresTotal.WithLabelValues(structureKind(f.Structure), "failed").Inc()
	}
	for _, m := range res.Meshes {
		structuresTotal.WithLabelValues(string(m.Kind), "ok").Inc()
		meshNodes.Observe(float64(len(m.Nodes)))
		if len(m.Unknown) > 0 {
			log.Warn("unknown attributes, not classified", "structure", m.Structure, "names", m.Unknown)
		}
	}
	unknownAttributesTotal.Add(float64(len(res.Unknown)))
	job.SetResult(res)
	nodes, elements, groups := res.Counts()
	if w.stats != nil {
		w.stats.Record(elapsed.Milliseconds(), nodes)
	}
	log.Info("resolution complete",
		"meshes", len(res.Meshes),
		"failures", len(res.Failures),
		"nodes", nodes,
		"elements", elements,
		"groups", groups,
		"duration_ms", elapsed.Milliseconds(),
	)

	if len(res.Meshes) == 0 {
		finish(job, StatusFailed, "resolving")
		return
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	rec := &meshstore.Record{
		ID:          job.MeshID,
		Filename:    job.Filename,
		ContentHash: job.ContentHash,
		Meshes:      res.Meshes,
		Failures:    res.Failures,
		Unknown:     res.Unknown,
		StoredAt:    time.Now().UTC(),
	}
	err = withRetry(ctx, log, "put_mesh", w.backoff, func() error {
		return w.store.PutMesh(ctx, rec)
	})
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store %s: %s", rec.ID, err))
		finish(job, StatusFailed, "storing")
		return
	}
	log.Info("storage complete", "meshes", len(rec.Meshes))

	if len(res.Failures) > 0 {
		finish(job, StatusPartial, "done")
	} else {
		finish(job, StatusCompleted, "done")
	}
}
