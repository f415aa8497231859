package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/tracemesh/internal/resolve"
)

// JobStatus represents the state of a resolution job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusResolving JobStatus = "resolving"
	StatusStoring   JobStatus = "storing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusPartial
}

// Job tracks the state of a single document resolution.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	MeshID string `json:"mesh_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *resolve.Result
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	Structures int      `json:"structures"`
	Resolved   int      `json:"resolved"`
	Failed     int      `json:"failed"`
	Nodes      int      `json:"nodes"`
	Elements   int      `json:"elements"`
	Groups     int      `json:"groups"`
	Unknown    []string `json:"unknown"`
	Errors     []string `json:"errors"`
}

// NewJob creates a queued job for an uploaded file. An empty meshID is
// derived from the content hash.
func NewJob(filename, meshID string, data []byte) *Job {
	now := time.Now()
	hash := ContentHashHex(data)
	if meshID == "" {
		meshID = hash[:16]
	}
	return &Job{
		ID:          newJobID(),
		MeshID:      meshID,
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentHash: hash,
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len is the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetStructures records how many structures the parsed model holds.
func (j *Job) SetStructures(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Structures = n
	j.UpdatedAt = time.Now()
}

// SetResult records the resolution result and its totals.
func (j *Job) SetResult(res *resolve.Result) {
	nodes, elements, groups := res.Counts()
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.Progress.Resolved = len(res.Meshes)
	j.Progress.Failed = len(res.Failures)
	j.Progress.Nodes = nodes
	j.Progress.Elements = elements
	j.Progress.Groups = groups
	j.Progress.Unknown = append([]string(nil), res.Unknown...)
	j.UpdatedAt = time.Now()
}

// Result returns the resolution result, nil until resolution finished.
func (j *Job) Result() *resolve.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFileData drops the upload once it has been parsed.
func (j *Job) releaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	MeshID    string    `json:"mesh_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	unknown := append([]string{}, j.Progress.Unknown...)
	p := j.Progress
	p.Errors = errs
	p.Unknown = unknown
	return JobSnapshot{
		ID:        j.ID,
		MeshID:    j.MeshID,
		Status:    j.Status,
		Phase:     j.Phase,
		Filename:  j.Filename,
		Progress:  p,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
