// Package scheduler runs recurring odds polling jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/models"
	"github.com/yourusername/oddsfeed/internal/service"
)

// Scheduler manages recurring odds fetch jobs
type Scheduler struct {
	cron      *cron.Cron
	svc       *service.OddsService
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(svc *service.OddsService, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		svc:    svc,
		logger: logger,
		jobIDs: make([]cron.EntryID, 0),
	}
}

// SchedulePolling schedules a recurring fetch for the given sports. The job
// timeout is bounded by the interval so runs never overlap themselves.
func (s *Scheduler) SchedulePolling(interval time.Duration, sports []models.Sport, betTypes []models.BetType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if interval < time.Minute {
		interval = time.Minute
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval-time.Second)
		defer cancel()

		batch, err := s.svc.FetchBatch(ctx, sports, betTypes)
		if err != nil {
			s.logger.WithError(err).Error("scheduled odds fetch failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"batch_id": batch.ID,
			"games":    len(batch.Games()),
		}).Info("scheduled odds fetch complete")
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("interval", interval).Info("scheduled odds polling job")

	return nil
}

// ScheduleDailySync schedules a once-a-day full fetch across all supported
// markets, typically before the day's games start.
func (s *Scheduler) ScheduleDailySync(cronExpression string, sports []models.Sport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		betTypes := []models.BetType{models.BetMoneyline, models.BetSpread, models.BetTotals}
		batch, err := s.svc.FetchBatch(ctx, sports, betTypes)
		if err != nil {
			s.logger.WithError(err).Error("daily odds sync failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"batch_id": batch.ID,
			"games":    len(batch.Games()),
		}).Info("daily odds sync complete")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("scheduled daily sync job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
