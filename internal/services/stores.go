package services

import (
	"context"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces consumed by the services. The mongo repositories in
// internal/repository satisfy them; tests inject in-memory fakes. Services
// receive these plus a clock at construction instead of reaching into any
// ambient state.

type ReminderStore interface {
	CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error)
	GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, id primitive.ObjectID, reminder *models.Reminder) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, id primitive.ObjectID) error
	GetDueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error)
	UpdateSchedule(ctx context.Context, id primitive.ObjectID, next time.Time, active bool) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	HasRecentDeadlineNotification(ctx context.Context, userID, goalID primitive.ObjectID, daysAhead int, since time.Time) (bool, error)
	HasDigestSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (bool, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type GoalStore interface {
	GetGoalsDueOn(ctx context.Context, day time.Time) ([]models.Goal, error)
	CountCompletedGoals(ctx context.Context, userID primitive.ObjectID) (int64, error)
	HasIncompleteGoals(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

type UserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetActiveUsersSince(ctx context.Context, since time.Time) ([]models.User, error)
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
}

type ProgressStore interface {
	CreateProgressLog(ctx context.Context, log *models.ProgressLog) (*models.ProgressLog, error)
	GetLogDatesSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error)
}

type AchievementStore interface {
	HasAchievement(ctx context.Context, userID primitive.ObjectID, achievementType string) (bool, error)
	CreateAchievement(ctx context.Context, achievement *models.Achievement) error
	GetUserAchievements(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error)
}

// Mailer delivers email best-effort. Implementations must not block beyond a
// normal send attempt; callers log and swallow any error.
type Mailer interface {
	Send(subject string, to []string, htmlBody string) error
}
