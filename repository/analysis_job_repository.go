package repository

import (
	"errors"
	"time"

	"aureus/domain"
)

var ErrJobNotFound = errors.New("analysis job not found")

type AnalysisJobRepository interface {
	Save(job domain.AnalysisJob) error
	Get(id string) (domain.AnalysisJob, error)
	// PurgeCompletedBefore deletes completed jobs finished before cutoff and
	// returns how many were removed.
	PurgeCompletedBefore(cutoff time.Time) int
}
