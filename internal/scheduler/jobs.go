package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/services"
	"github.com/sirupsen/logrus"
)

// RegisterJobs wires the core's periodic jobs onto the scheduler with their
// production schedules. digestHour is the local hour (0-23) at which daily
// digests go out. Registration is idempotent per job name.
func RegisterJobs(s *Scheduler, reminders *services.ReminderService, notifications *services.NotificationService, digestHour int) error {
	jobs := []struct {
		name string
		spec string
		fn   services.JobFunc
	}{
		{JobHeartbeat, "@every 30m", heartbeat},
		{JobProcessReminders, "@every 5m", reminders.ProcessDueReminders},
		{JobCheckGoalDeadlines, "@every 1h", notifications.CheckGoalDeadlines},
		{JobGenerateDailyDigests, fmt.Sprintf("0 %d * * *", digestHour), notifications.GenerateDailyDigests},
		{JobCleanupNotifications, "0 3 * * 0", notifications.CleanupNotifications},
	}

	for _, j := range jobs {
		if err := s.AddJob(j.name, j.spec, j.fn); err != nil {
			return err
		}
	}
	return nil
}

func heartbeat(ctx context.Context) services.RunResult {
	logrus.Infof("Scheduler heartbeat at %s", time.Now().UTC().Format(time.RFC3339))
	return services.RunResult{Status: services.RunOK}
}
