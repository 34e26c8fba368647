package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
)

func newTestNotificationService(notifs *fakeNotificationStore, goals *fakeGoalStore, users *fakeUserStore, progress *fakeProgressStore, mailer *fakeMailer, now time.Time) *NotificationService {
	s := NewNotificationService(notifs, goals, users, progress, mailer)
	s.now = func() time.Time { return now }
	return s
}

func TestCheckGoalDeadlines_NotifiesEachWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	user := &models.User{ID: primitive.NewObjectID(), Email: "learner@example.com", IsActive: true}

	goals := &fakeGoalStore{goals: []models.Goal{
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Learn Go", TargetDate: now.AddDate(0, 0, 1)},
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Read book", TargetDate: now.AddDate(0, 0, 3)},
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Ship project", TargetDate: now.AddDate(0, 0, 7)},
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Far away", TargetDate: now.AddDate(0, 0, 5)},
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Done", TargetDate: now.AddDate(0, 0, 3), IsCompleted: true},
	}}

	notifs := &fakeNotificationStore{}
	mailer := &fakeMailer{}
	svc := newTestNotificationService(notifs, goals, &fakeUserStore{users: []*models.User{user}}, &fakeProgressStore{}, mailer, now)

	result := svc.CheckGoalDeadlines(context.Background())

	assert.Equal(t, RunOK, result.Status)
	created := notifs.byType(models.NotificationTypeDeadline)
	require.Len(t, created, 3, "one per matching window; off-window and completed goals skipped")
	assert.Len(t, mailer.sent, 3)

	assert.Contains(t, created[0].Message, "due tomorrow")
	assert.Contains(t, created[1].Message, "due in 3 days")
	assert.Contains(t, created[2].Message, "due in one week")
}

func TestCheckGoalDeadlines_DeduplicatesWithinADay(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	user := &models.User{ID: primitive.NewObjectID(), Email: "learner@example.com", IsActive: true}

	goals := &fakeGoalStore{goals: []models.Goal{
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Learn Go", TargetDate: now.AddDate(0, 0, 3)},
	}}

	notifs := &fakeNotificationStore{}
	svc := newTestNotificationService(notifs, goals, &fakeUserStore{users: []*models.User{user}}, &fakeProgressStore{}, &fakeMailer{}, now)

	svc.CheckGoalDeadlines(context.Background())

	// Same hour, second run.
	svc.now = func() time.Time { return now.Add(30 * time.Minute) }
	svc.CheckGoalDeadlines(context.Background())

	assert.Len(t, notifs.byType(models.NotificationTypeDeadline), 1, "exactly one notification per (goal, window) pair")
}

func TestCheckGoalDeadlines_RespectsEmailOptOut(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	user := &models.User{
		ID:          primitive.NewObjectID(),
		Email:       "learner@example.com",
		IsActive:    true,
		Preferences: &models.Preferences{EmailNotifications: false},
	}

	goals := &fakeGoalStore{goals: []models.Goal{
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Learn Go", TargetDate: now.AddDate(0, 0, 1)},
	}}

	notifs := &fakeNotificationStore{}
	mailer := &fakeMailer{}
	svc := newTestNotificationService(notifs, goals, &fakeUserStore{users: []*models.User{user}}, &fakeProgressStore{}, mailer, now)

	svc.CheckGoalDeadlines(context.Background())

	assert.Len(t, notifs.byType(models.NotificationTypeDeadline), 1, "in-app notice still created")
	assert.Empty(t, mailer.sent, "opted-out user gets no email")
}

func TestGenerateDailyDigests_OncePerDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "learner@example.com",
		IsActive:     true,
		LastActiveAt: now.AddDate(0, 0, -2),
	}

	goals := &fakeGoalStore{goals: []models.Goal{
		{ID: primitive.NewObjectID(), UserID: user.ID, Title: "Learn Go"},
	}}

	notifs := &fakeNotificationStore{}
	svc := newTestNotificationService(notifs, goals, &fakeUserStore{users: []*models.User{user}}, &fakeProgressStore{}, &fakeMailer{}, now)

	result := svc.GenerateDailyDigests(context.Background())
	assert.Equal(t, RunOK, result.Status)
	assert.Equal(t, 1, result.Processed)

	// Cron misfires and runs again the same day.
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	result = svc.GenerateDailyDigests(context.Background())
	assert.Equal(t, 0, result.Processed)

	digests := notifs.byType(models.NotificationTypeSystem)
	require.Len(t, digests, 1)
	assert.Equal(t, models.DigestTitle, digests[0].Title)
}

func TestGenerateDailyDigests_SkipsInactiveAndGoallessUsers(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	active := &models.User{ID: primitive.NewObjectID(), IsActive: true, LastActiveAt: now.AddDate(0, 0, -1)}
	stale := &models.User{ID: primitive.NewObjectID(), IsActive: true, LastActiveAt: now.AddDate(0, 0, -10)}
	goalless := &models.User{ID: primitive.NewObjectID(), IsActive: true, LastActiveAt: now}

	goals := &fakeGoalStore{goals: []models.Goal{
		{ID: primitive.NewObjectID(), UserID: active.ID, Title: "Learn Go"},
		{ID: primitive.NewObjectID(), UserID: stale.ID, Title: "Old goal"},
	}}

	notifs := &fakeNotificationStore{}
	svc := newTestNotificationService(notifs, goals, &fakeUserStore{users: []*models.User{active, stale, goalless}}, &fakeProgressStore{}, &fakeMailer{}, now)

	svc.GenerateDailyDigests(context.Background())

	digests := notifs.byType(models.NotificationTypeSystem)
	require.Len(t, digests, 1)
	assert.Equal(t, active.ID, digests[0].UserID)
}

func TestGenerateDailyDigests_MessageBranches(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()

	t.Run("streak emphasized", func(t *testing.T) {
		progress := &fakeProgressStore{}
		for i := 0; i < 8; i++ {
			progress.logs = append(progress.logs, models.ProgressLog{
				UserID:    userID,
				CreatedAt: now.AddDate(0, 0, -i),
			})
		}
		svc := newTestNotificationService(&fakeNotificationStore{}, &fakeGoalStore{}, &fakeUserStore{}, progress, &fakeMailer{}, now)
		msg := svc.digestMessage(context.Background(), userID, now)
		assert.Contains(t, msg, "streak")
	})

	t.Run("completed goals emphasized", func(t *testing.T) {
		goals := &fakeGoalStore{goals: []models.Goal{
			{ID: primitive.NewObjectID(), UserID: userID, IsCompleted: true},
			{ID: primitive.NewObjectID(), UserID: userID, IsCompleted: true},
		}}
		svc := newTestNotificationService(&fakeNotificationStore{}, goals, &fakeUserStore{}, &fakeProgressStore{}, &fakeMailer{}, now)
		msg := svc.digestMessage(context.Background(), userID, now)
		assert.Contains(t, msg, "completed 2 goals")
	})

	t.Run("generic encouragement", func(t *testing.T) {
		svc := newTestNotificationService(&fakeNotificationStore{}, &fakeGoalStore{}, &fakeUserStore{}, &fakeProgressStore{}, &fakeMailer{}, now)
		msg := svc.digestMessage(context.Background(), userID, now)
		assert.Contains(t, msg, "Small steps")
	})
}

func TestCleanupNotifications_RetentionRules(t *testing.T) {
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()

	oldRead := &models.Notification{ID: primitive.NewObjectID(), UserID: userID, Read: true, CreatedAt: now.AddDate(0, 0, -31)}
	recentRead := &models.Notification{ID: primitive.NewObjectID(), UserID: userID, Read: true, CreatedAt: now.AddDate(0, 0, -29)}
	oldUnread := &models.Notification{ID: primitive.NewObjectID(), UserID: userID, Read: false, CreatedAt: now.AddDate(0, 0, -40)}

	notifs := &fakeNotificationStore{notifications: []*models.Notification{oldRead, recentRead, oldUnread}}
	svc := newTestNotificationService(notifs, &fakeGoalStore{}, &fakeUserStore{}, &fakeProgressStore{}, &fakeMailer{}, now)

	result := svc.CleanupNotifications(context.Background())

	assert.Equal(t, RunOK, result.Status)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, notifs.notifications, 2)
	assert.NotContains(t, notifs.notifications, oldRead)
	assert.Contains(t, notifs.notifications, recentRead, "29-day-old read notification retained")
	assert.Contains(t, notifs.notifications, oldUnread, "unread notifications kept regardless of age")
}
