package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Stable job names. Re-registering a name replaces the existing schedule.
const (
	JobHeartbeat            = "heartbeat"
	JobProcessReminders     = "process_reminders"
	JobCheckGoalDeadlines   = "check_goal_deadlines"
	JobGenerateDailyDigests = "generate_daily_reminders"
	JobCleanupNotifications = "cleanup_notifications"
)

// Scheduler wraps a cron runner with named jobs. Each job carries its own
// overlap guard: if a run is still going when the next tick arrives, the tick
// is skipped and logged instead of starting a second concurrent run.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries map[string]cron.EntryID
	guards  map[string]*sync.Mutex
}

// New creates a scheduler. Specs use the standard five-field cron format or
// the @every shorthand.
func New() *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
		guards:  make(map[string]*sync.Mutex),
	}
}

// AddJob registers a named job. Registering an existing name removes the old
// entry first, so repeated wiring at startup never duplicates a schedule.
func (s *Scheduler) AddJob(name, spec string, job services.JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
		logrus.WithField("job", name).Info("Replacing existing scheduled job")
	}

	guard, ok := s.guards[name]
	if !ok {
		guard = &sync.Mutex{}
		s.guards[name] = guard
	}

	id, err := s.cron.AddFunc(spec, func() {
		s.runJob(name, guard, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %v", name, err)
	}
	s.entries[name] = id

	logrus.WithFields(logrus.Fields{
		"job":  name,
		"spec": spec,
	}).Info("Job scheduled")
	return nil
}

// runJob is the per-job error boundary: it reports the run's outcome to the
// log and never lets a failing job affect the scheduler or other jobs.
func (s *Scheduler) runJob(name string, guard *sync.Mutex, job services.JobFunc) {
	if !guard.TryLock() {
		logrus.WithField("job", name).Warn("Previous run still in progress, skipping this tick")
		return
	}
	defer guard.Unlock()

	started := time.Now()
	result := job(context.Background())
	entry := logrus.WithFields(logrus.Fields{
		"job":       name,
		"status":    result.Status.String(),
		"processed": result.Processed,
		"duration":  time.Since(started).String(),
	})

	switch result.Status {
	case services.RunOK:
		entry.Debug("Job run completed")
	case services.RunPartialFailure:
		entry.WithField("errors", len(result.Errors)).Warn("Job run completed with item failures")
	case services.RunFailed:
		if len(result.Errors) > 0 {
			entry = entry.WithError(result.Errors[0])
		}
		entry.Error("Job run failed")
	}
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logrus.Info("Scheduler started")
}

// Stop stops the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logrus.Info("Scheduler stopped")
}

// JobNames returns the names of all registered jobs.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names
}
