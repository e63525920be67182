// Package worker runs periodic background detection in server mode so the
// history reflects camera presence over time, not just on demand.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/martinsuchenak/camguard/internal/log"
	"github.com/martinsuchenak/camguard/internal/storage"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// DetectionService is the detection surface the scheduler drives
type DetectionService interface {
	Run(ctx context.Context) *model.DetectionRun
}

// Scheduler runs detection on a fixed interval and records the results
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	running  bool
	detector DetectionService
	store    storage.HistoryStore
	interval time.Duration
	// prune history older than this many days, 0 keeps everything
	retentionDays int
	lastVerdict   model.Verdict
}

// NewScheduler creates a scheduler that detects every interval
func NewScheduler(detector DetectionService, store storage.HistoryStore, interval time.Duration, retentionDays int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		detector:      detector,
		store:         store,
		interval:      interval,
		retentionDays: retentionDays,
	}
}

// Start begins periodic detection. The first run happens after one full
// interval; server startup is expected to trigger an immediate run itself
// if it wants a fresh baseline.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := s.cron.AddFunc("@every "+s.interval.String(), s.runDetection); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	log.Info("Detection scheduler started", "interval", s.interval.String(), "retention_days", s.retentionDays)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running detection
// pass to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	log.Info("Detection scheduler stopped")
}

// runDetection performs one scheduled pass: detect, record, prune
func (s *Scheduler) runDetection() {
	run := s.detector.Run(context.Background())

	s.mu.Lock()
	previous := s.lastVerdict
	s.lastVerdict = run.Verdict
	s.mu.Unlock()

	if previous != "" && previous != run.Verdict {
		log.Info("Camera verdict changed", "from", previous, "to", run.Verdict, "run_id", run.ID)
	}

	if s.store == nil {
		return
	}

	if err := s.store.SaveRun(run); err != nil {
		log.Warn("Failed to save scheduled detection run", "run_id", run.ID, "error", err)
	}

	if s.retentionDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
		pruned, err := s.store.PruneRuns(cutoff)
		if err != nil {
			log.Warn("Failed to prune detection history", "error", err)
		} else if pruned > 0 {
			log.Debug("Pruned detection history", "removed", pruned, "cutoff", cutoff)
		}
	}
}
