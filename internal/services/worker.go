package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
	AnalysisCancelled AnalysisStatus = "cancelled"
)

// Analysis is a snapshot of one asynchronous AI call.
type Analysis struct {
	ID         uuid.UUID
	Panel      string
	Status     AnalysisStatus
	Result     interface{}
	Err        error
	CreatedAt  time.Time
	FinishedAt time.Time
}

// AnalysisFunc performs the AI call. ctx is cancelled when the panel closes.
type AnalysisFunc func(ctx context.Context) (interface{}, error)

// AnalysisRunner executes AI calls on a bounded pool. At most one call per
// panel is in flight; closing a panel cancels its call and drops the result.
type AnalysisRunner interface {
	Start(ctx context.Context)
	Stop()
	Submit(panel string, fn AnalysisFunc) (*Analysis, error)
	Get(id uuid.UUID) (*Analysis, error)
	Close(panel string) bool
}

// PanelKey names the view that owns an analysis, e.g. "<app id>:tailor".
func PanelKey(subject uuid.UUID, op string) string {
	return subject.String() + ":" + op
}

type analysisJob struct {
	analysis Analysis
	fn       AnalysisFunc
	ctx      context.Context
	cancel   context.CancelFunc
}

type analysisRunner struct {
	mu          sync.Mutex
	jobs        map[uuid.UUID]*analysisJob
	panels      map[string]*analysisJob
	jobQueue    chan *analysisJob
	concurrency int
	retention   time.Duration
	baseCtx     context.Context
	baseCancel  context.CancelFunc
	running     bool
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewAnalysisRunner(concurrency int) AnalysisRunner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &analysisRunner{
		jobs:        make(map[uuid.UUID]*analysisJob),
		panels:      make(map[string]*analysisJob),
		jobQueue:    make(chan *analysisJob, 100),
		concurrency: concurrency,
		retention:   time.Hour,
		stopChan:    make(chan struct{}),
	}
}

// Start implements AnalysisRunner.
func (r *analysisRunner) Start(ctx context.Context) {
	r.mu.Lock()
	r.baseCtx, r.baseCancel = context.WithCancel(ctx)
	r.running = true
	r.mu.Unlock()

	logrus.Infof("🚀 Starting analysis runner with %d workers", r.concurrency)

	for i := 0; i < r.concurrency; i++ {
		r.wg.Add(1)
		go r.processJobs(i + 1)
	}

	r.wg.Add(1)
	go r.pruneFinished()
}

// Stop implements AnalysisRunner. In-flight calls are cancelled.
func (r *analysisRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.baseCancel()
	r.mu.Unlock()

	logrus.Info("🛑 Stopping analysis runner...")
	close(r.stopChan)
	r.wg.Wait()
	if n := r.drainQueue(); n > 0 {
		logrus.Infof("🧹 Failed %d queued analyses on shutdown", n)
	}
	logrus.Info("✅ Analysis runner stopped")
}

// drainQueue fails every job still waiting in the queue.
func (r *analysisRunner) drainQueue() int {
	drained := 0
	for {
		select {
		case job := <-r.jobQueue:
			r.finish(job, nil, ErrRunnerStopped)
			drained++
		default:
			return drained
		}
	}
}

// Submit implements AnalysisRunner.
func (r *analysisRunner) Submit(panel string, fn AnalysisFunc) (*Analysis, error) {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil, ErrRunnerStopped
	}
	if _, busy := r.panels[panel]; busy {
		r.mu.Unlock()
		return nil, ErrPanelBusy
	}

	ctx, cancel := context.WithCancel(r.baseCtx)
	job := &analysisJob{
		analysis: Analysis{
			ID:        uuid.New(),
			Panel:     panel,
			Status:    AnalysisPending,
			CreatedAt: time.Now(),
		},
		fn:     fn,
		ctx:    ctx,
		cancel: cancel,
	}
	r.jobs[job.analysis.ID] = job
	r.panels[panel] = job
	snapshot := job.analysis
	r.mu.Unlock()

	select {
	case r.jobQueue <- job:
		logrus.WithFields(logrus.Fields{"job_id": snapshot.ID, "panel": panel}).Debug("📥 Analysis enqueued")
		// Stop may have drained the queue between the running check and the send.
		r.mu.Lock()
		stopped := !r.running
		r.mu.Unlock()
		if stopped {
			r.drainQueue()
		}
		return &snapshot, nil
	case <-r.stopChan:
		r.finish(job, nil, ErrRunnerStopped)
		return nil, ErrRunnerStopped
	}
}

// Get implements AnalysisRunner.
func (r *analysisRunner) Get(id uuid.UUID) (*Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	snapshot := job.analysis
	return &snapshot, nil
}

// Close implements AnalysisRunner. It reports whether a call was in flight.
func (r *analysisRunner) Close(panel string) bool {
	r.mu.Lock()
	job, ok := r.panels[panel]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.panels, panel)
	job.analysis.Status = AnalysisCancelled
	job.analysis.FinishedAt = time.Now()
	r.mu.Unlock()

	job.cancel()
	logrus.WithFields(logrus.Fields{"job_id": job.analysis.ID, "panel": panel}).Info("🚫 Panel closed, analysis cancelled")
	return true
}

func (r *analysisRunner) processJobs(workerID int) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopChan:
			logrus.Debugf("👷 Worker #%d stopped", workerID)
			return
		case job := <-r.jobQueue:
			if job.ctx.Err() != nil {
				r.finish(job, nil, job.ctx.Err())
				continue
			}
			result, err := job.fn(job.ctx)
			r.finish(job, result, err)
		}
	}
}

// finish records the outcome unless the panel was closed in the meantime.
func (r *analysisRunner) finish(job *analysisJob, result interface{}, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer job.cancel()

	log := logrus.WithFields(logrus.Fields{"job_id": job.analysis.ID, "panel": job.analysis.Panel})

	if job.analysis.Status != AnalysisPending {
		log.Debug("🗑️ Discarding result for closed panel")
		return
	}
	if r.panels[job.analysis.Panel] == job {
		delete(r.panels, job.analysis.Panel)
	}

	job.analysis.FinishedAt = time.Now()
	if err != nil {
		job.analysis.Status = AnalysisFailed
		job.analysis.Err = err
		log.WithError(err).Warn("⚠️ Analysis failed")
		return
	}
	job.analysis.Status = AnalysisCompleted
	job.analysis.Result = result
	log.Info("✅ Analysis completed")
}

func (r *analysisRunner) pruneFinished() {
	defer r.wg.Done()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case now := <-ticker.C:
			if n := r.prune(now); n > 0 {
				logrus.Debugf("🧹 Pruned %d finished analyses", n)
			}
		}
	}
}

// prune drops finished analyses older than the retention window.
func (r *analysisRunner) prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, job := range r.jobs {
		if job.analysis.Status == AnalysisPending {
			continue
		}
		if now.Sub(job.analysis.FinishedAt) > r.retention {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}
