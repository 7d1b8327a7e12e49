package repository

import (
	"sync"
	"time"

	"aureus/domain"
)

// AnalysisJobRepositoryMemory is an in-memory implementation of
// AnalysisJobRepository.
type AnalysisJobRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.AnalysisJob
}

// NewAnalysisJobRepositoryMemory creates a new in-memory job repository.
func NewAnalysisJobRepositoryMemory() *AnalysisJobRepositoryMemory {
	return &AnalysisJobRepositoryMemory{
		data: make(map[string]domain.AnalysisJob),
	}
}

// Save inserts or replaces the job with the same ID.
func (r *AnalysisJobRepositoryMemory) Save(job domain.AnalysisJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[job.ID] = job
	return nil
}

func (r *AnalysisJobRepositoryMemory) Get(id string) (domain.AnalysisJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.data[id]
	if !ok {
		return domain.AnalysisJob{}, ErrJobNotFound
	}
	return job, nil
}

func (r *AnalysisJobRepositoryMemory) PurgeCompletedBefore(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, job := range r.data {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(r.data, id)
			removed++
		}
	}
	return removed
}
