package sync

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks the state of a sync job.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// Job is one tracked sync run.
type Job struct {
	ID         string
	Status     JobStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Report     *Report
	Error      string
}

// Registry tracks sync jobs in memory. Job history does not survive a
// restart; the event log holds the durable record.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*Job)}
}

// Start registers a new pending job and returns it.
func (r *Registry) Start() *Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := &Job{
		ID:        uuid.NewString(),
		Status:    JobPending,
		StartedAt: time.Now(),
	}
	r.jobs[j.ID] = j
	return j
}

// Finish records a job's outcome.
func (r *Registry) Finish(id string, report *Report, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return
	}
	j.FinishedAt = time.Now()
	j.Report = report
	if err != nil {
		j.Status = JobError
		j.Error = err.Error()
		return
	}
	j.Status = JobDone
}

// Get returns a job by ID.
func (r *Registry) Get(id string) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	return j, ok
}

// Running reports whether any job is still pending.
func (r *Registry) Running() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.jobs {
		if j.Status == JobPending {
			return true
		}
	}
	return false
}

// List returns all jobs, most recently started first.
func (r *Registry) List() []*Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]*Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].StartedAt.After(jobs[k].StartedAt)
	})
	return jobs
}
