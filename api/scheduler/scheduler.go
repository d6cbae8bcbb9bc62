package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/models"
)

// PingTimeout bounds a single ping
const PingTimeout = 5 * time.Second

// Pinger is anything that can check the backend is answering
type Pinger interface {
	Ping(ctx context.Context) error
}

// Scheduler periodically pings the backend REST API and keeps the last result
type Scheduler struct {
	cron     *cron.Cron
	pinger   Pinger
	schedule string
	now      func() time.Time

	mu     sync.RWMutex
	status models.BackendStatus
}

// NewScheduler creates a scheduler that pings pinger on the given cron spec, for
// example "@every 1m"
func NewScheduler(pinger Pinger, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		pinger:   pinger,
		schedule: schedule,
		now:      time.Now,
	}
}

// Start runs one ping immediately and then begins the cron schedule
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.ping); err != nil {
		zap.S().Errorw("failed to register backend ping job", "error", err, "schedule", s.schedule)
		return err
	}

	s.ping()
	s.cron.Start()
	zap.S().Infow("backend ping scheduler started", "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running ping
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("backend ping scheduler stopped")
}

// Status returns the result of the last ping
func (s *Scheduler) Status() models.BackendStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()

	err := s.pinger.Ping(ctx)

	status := models.BackendStatus{
		Reachable:   err == nil,
		LastChecked: s.now(),
	}
	if err != nil {
		status.LastError = err.Error()
	}

	s.mu.Lock()
	previous := s.status
	s.status = status
	s.mu.Unlock()

	switch {
	case err != nil && (previous.Reachable || previous.LastChecked.IsZero()):
		zap.S().Warnw("backend is unreachable", "error", err)
	case err == nil && !previous.Reachable:
		zap.S().Info("backend is reachable")
	}
}
