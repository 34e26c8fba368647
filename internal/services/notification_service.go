package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// deadlineWindows are the lookahead horizons, in days, at which an
// approaching goal target date triggers a notice.
var deadlineWindows = []int{1, 3, 7}

const retentionWindow = 30 * 24 * time.Hour

// NotificationService owns the notification sink plus the scheduled jobs
// that produce notifications from goal and user state: deadline checks, the
// daily digest and retention cleanup.
type NotificationService struct {
	notifications NotificationStore
	goals         GoalStore
	users         UserStore
	progress      ProgressStore
	mailer        Mailer
	now           func() time.Time
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(notifications NotificationStore, goals GoalStore, users UserStore, progress ProgressStore, mailer Mailer) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		goals:         goals,
		users:         users,
		progress:      progress,
		mailer:        mailer,
		now:           time.Now,
	}
}

// CreateNotification logs a new notification for a user.
func (s *NotificationService) CreateNotification(ctx context.Context, notif *models.Notification) error {
	return s.notifications.CreateNotification(ctx, notif)
}

// GetUserNotifications returns the latest 50 notifications for a user.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.notifications.GetUserNotifications(ctx, userID, 50)
}

// MarkNotificationAsRead sets the "read" status of a notification to true.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.notifications.MarkAsRead(ctx, notifID)
}

// MarkAllNotificationsRead marks every unread notification of a user as read.
func (s *NotificationService) MarkAllNotificationsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// DeleteAllNotifications removes all notifications of a user.
func (s *NotificationService) DeleteAllNotifications(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifications.DeleteAllForUser(ctx, userID)
}

// CheckGoalDeadlines scans for incomplete goals due in exactly 1, 3 or 7
// days and notifies their owners. A (goal, window) pair already notified
// within the last 24 hours is skipped, so hourly runs don't re-notify.
func (s *NotificationService) CheckGoalDeadlines(ctx context.Context) RunResult {
	now := s.now()
	today := startOfDay(now)
	dedupSince := now.Add(-24 * time.Hour)

	var itemErrs []error
	created := 0
	for _, window := range deadlineWindows {
		target := today.AddDate(0, 0, window)
		goals, err := s.goals.GetGoalsDueOn(ctx, target)
		if err != nil {
			logger.Log.WithError(err).WithField("days_ahead", window).Error("Failed to fetch goals for deadline check")
			itemErrs = append(itemErrs, err)
			continue
		}

		for i := range goals {
			goal := &goals[i]
			exists, err := s.notifications.HasRecentDeadlineNotification(ctx, goal.UserID, goal.ID, window, dedupSince)
			if err != nil {
				logrus.WithError(err).WithField("goal_id", goal.ID.Hex()).Warn("Failed deadline dedup lookup")
				itemErrs = append(itemErrs, err)
				continue
			}
			if exists {
				continue
			}

			notif := &models.Notification{
				UserID:    goal.UserID,
				Type:      models.NotificationTypeDeadline,
				Title:     "⏰ Deadline Approaching",
				Message:   deadlineMessage(goal.Title, window),
				ActionURL: fmt.Sprintf("/goals/%s", goal.ID.Hex()),
				Metadata:  bson.M{"goal_id": goal.ID, "days_ahead": window},
			}
			if err := s.notifications.CreateNotification(ctx, notif); err != nil {
				logrus.WithError(err).WithField("goal_id", goal.ID.Hex()).Warn("Failed to create deadline notification")
				itemErrs = append(itemErrs, err)
				continue
			}
			created++

			s.emailDeadline(ctx, goal, window)
		}
	}

	if created > 0 {
		logger.Log.WithField("created", created).Info("Deadline notifications created")
	}
	return batchRun(created, itemErrs)
}

func deadlineMessage(goalTitle string, daysAhead int) string {
	switch daysAhead {
	case 1:
		return fmt.Sprintf("Your goal \"%s\" is due tomorrow!", goalTitle)
	case 7:
		return fmt.Sprintf("Your goal \"%s\" is due in one week.", goalTitle)
	default:
		return fmt.Sprintf("Your goal \"%s\" is due in %d days.", goalTitle, daysAhead)
	}
}

// emailDeadline sends a deadline email unless the owner opted out. Failures
// are logged and swallowed.
func (s *NotificationService) emailDeadline(ctx context.Context, goal *models.Goal, daysAhead int) {
	user, err := s.users.GetUserByID(ctx, goal.UserID)
	if err != nil {
		logrus.WithError(err).WithField("goal_id", goal.ID.Hex()).Warn("Failed to load goal owner for deadline email")
		return
	}
	if !user.EmailNotificationsEnabled() {
		return
	}

	subject := fmt.Sprintf("Deadline approaching: %s", goal.Title)
	body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", goal.Title, deadlineMessage(goal.Title, daysAhead))
	if err := s.mailer.Send(subject, []string{user.Email}, body); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"goal_id": goal.ID.Hex(),
			"user_id": user.ID.Hex(),
		}).Warn("Failed to send deadline email")
	}
}

// GenerateDailyDigests creates one motivational notification per recently
// active user with open goals. A user who already got today's digest is
// skipped, so a trigger that fires twice in a day stays harmless.
func (s *NotificationService) GenerateDailyDigests(ctx context.Context) RunResult {
	now := s.now()
	dayStart := startOfDay(now)

	users, err := s.users.GetActiveUsersSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch active users for daily digest")
		return failedRun(err)
	}

	var itemErrs []error
	created := 0
	for i := range users {
		user := &users[i]

		hasOpen, err := s.goals.HasIncompleteGoals(ctx, user.ID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to check open goals for digest")
			itemErrs = append(itemErrs, err)
			continue
		}
		if !hasOpen {
			continue
		}

		sent, err := s.notifications.HasDigestSince(ctx, user.ID, dayStart)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed digest dedup lookup")
			itemErrs = append(itemErrs, err)
			continue
		}
		if sent {
			continue
		}

		notif := &models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationTypeSystem,
			Title:   models.DigestTitle,
			Message: s.digestMessage(ctx, user.ID, now),
		}
		if err := s.notifications.CreateNotification(ctx, notif); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to create digest notification")
			itemErrs = append(itemErrs, err)
			continue
		}
		created++
	}

	logger.Log.WithField("created", created).Info("Daily digests generated")
	return batchRun(created, itemErrs)
}

// digestMessage picks the most motivating angle available: a running streak,
// past completions, or plain encouragement.
func (s *NotificationService) digestMessage(ctx context.Context, userID primitive.ObjectID, now time.Time) string {
	streak := 0
	dates, err := s.progress.GetLogDatesSince(ctx, userID, now.AddDate(0, 0, -streakLookbackDays))
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to load progress dates for digest")
	} else {
		streak = StreakFromDates(dates, now)
	}

	if streak >= 7 {
		return fmt.Sprintf("You're on a %d-day learning streak! Keep it alive with a session today.", streak)
	}

	completed, err := s.goals.CountCompletedGoals(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to count completed goals for digest")
		completed = 0
	}
	if completed > 0 {
		return fmt.Sprintf("You've already completed %d goals. A few minutes today keeps the momentum going!", completed)
	}

	return "Small steps add up. Log some progress on one of your goals today!"
}

// CleanupNotifications deletes notifications that are both read and older
// than the retention window. Unread notifications are kept regardless of age.
func (s *NotificationService) CleanupNotifications(ctx context.Context) RunResult {
	cutoff := s.now().Add(-retentionWindow)

	deleted, err := s.notifications.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to clean up notifications")
		return failedRun(err)
	}
	return RunResult{Status: RunOK, Processed: int(deleted)}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
