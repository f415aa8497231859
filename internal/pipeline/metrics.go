package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// jobsTotal counts finished jobs by terminal status
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracemesh_jobs_total",
		Help: "Total resolution jobs by final status",
	}, []string{"status"})

	// structuresTotal counts structures by kind and outcome
	structuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracemesh_structures_total",
		Help: "Total structures resolved by kind and result",
	}, []string{"kind", "result"})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracemesh_resolve_duration_seconds",
		Help:    "Model resolution duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	meshNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracemesh_mesh_nodes",
		Help:    "Number of nodes per resolved mesh",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	unknownAttributesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracemesh_unknown_attributes_total",
		Help: "Total distinct unknown attribute names reported per job",
	})

	retryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracemesh_store_retries_total",
		Help: "Total retryable mesh store failures by operation",
	}, []string{"op"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tracemesh_queue_depth",
		Help: "Jobs waiting for a worker",
	})
)
