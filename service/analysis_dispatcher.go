package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aureus/domain"
	"aureus/repository"
)

var ErrDispatcherStopped = errors.New("analysis dispatcher stopped")

// Analyzer produces commentary for a result. Implementations must not fail.
type Analyzer interface {
	Analyze(ctx context.Context, result domain.SimulationResult) domain.AIAnalysis
}

type DispatcherOptions struct {
	Timeout         time.Duration // per analysis
	Retention       time.Duration // how long completed jobs stay readable
	CleanupInterval time.Duration
}

// AnalysisDispatcher runs commentary requests in the background, each on its
// own snapshot of the result. Callers poll the job by ID.
type AnalysisDispatcher struct {
	analyzer  Analyzer
	jobs      repository.AnalysisJobRepository
	timeout   time.Duration
	retention time.Duration
	log       zerolog.Logger
	now       func() time.Time

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex // guards stopped and wg.Add
	stopped     bool
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewAnalysisDispatcher(
	analyzer Analyzer,
	jobs repository.AnalysisJobRepository,
	opts DispatcherOptions,
	log zerolog.Logger,
) *AnalysisDispatcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retention <= 0 {
		opts.Retention = time.Hour
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = opts.Retention / 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &AnalysisDispatcher{
		analyzer:    analyzer,
		jobs:        jobs,
		timeout:     opts.Timeout,
		retention:   opts.Retention,
		log:         log.With().Str("component", "analysis_dispatcher").Logger(),
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
		stopCleanup: make(chan struct{}),
	}
	go d.cleanupLoop(opts.CleanupInterval)
	return d
}

// Submit registers a pending job for result and starts the analysis without
// waiting for it.
func (d *AnalysisDispatcher) Submit(result domain.SimulationResult) (domain.AnalysisJob, error) {
	snapshot := result
	snapshot.MonthlyData = slices.Clone(result.MonthlyData)

	job := domain.AnalysisJob{
		ID:        uuid.NewString(),
		Status:    domain.AnalysisPending,
		Snapshot:  snapshot.Summary(),
		CreatedAt: d.now().UTC(),
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return domain.AnalysisJob{}, ErrDispatcherStopped
	}
	d.wg.Add(1)
	d.mu.Unlock()

	if err := d.jobs.Save(job); err != nil {
		d.wg.Done()
		return domain.AnalysisJob{}, err
	}
	go d.run(job, snapshot)

	d.log.Debug().Str("job_id", job.ID).Msg("analysis submitted")
	return job, nil
}

func (d *AnalysisDispatcher) Get(id string) (domain.AnalysisJob, error) {
	return d.jobs.Get(id)
}

func (d *AnalysisDispatcher) run(job domain.AnalysisJob, snapshot domain.SimulationResult) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	analysis := d.analyzer.Analyze(ctx, snapshot)

	completedAt := d.now().UTC()
	job.Status = domain.AnalysisCompleted
	job.Analysis = &analysis
	job.CompletedAt = &completedAt

	if err := d.jobs.Save(job); err != nil {
		d.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to store analysis")
		return
	}
	d.log.Debug().
		Str("job_id", job.ID).
		Dur("elapsed", completedAt.Sub(job.CreatedAt)).
		Msg("analysis completed")
}

func (d *AnalysisDispatcher) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.purge()
		case <-d.stopCleanup:
			return
		}
	}
}

func (d *AnalysisDispatcher) purge() int {
	removed := d.jobs.PurgeCompletedBefore(d.now().Add(-d.retention))
	if removed > 0 {
		d.log.Debug().Int("removed", removed).Msg("purged expired analysis jobs")
	}
	return removed
}

// Stop cancels outstanding analyses and waits for them to record their
// (fallback) results.
func (d *AnalysisDispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	d.stopOnce.Do(func() {
		close(d.stopCleanup)
		d.cancel()
	})
	d.wg.Wait()
}
