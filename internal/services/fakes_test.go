package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes backing the service tests.

type fakeReminderStore struct {
	reminders   []*models.Reminder
	scheduleErr map[primitive.ObjectID]error
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{scheduleErr: make(map[primitive.ObjectID]error)}
}

func (f *fakeReminderStore) add(r *models.Reminder) *models.Reminder {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.reminders = append(f.reminders, r)
	return r
}

func (f *fakeReminderStore) find(id primitive.ObjectID) *models.Reminder {
	for _, r := range f.reminders {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (f *fakeReminderStore) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.CreatedAt = time.Now()
	return f.add(reminder), nil
}

func (f *fakeReminderStore) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	if r := f.find(id); r != nil {
		return r, nil
	}
	return nil, fmt.Errorf("reminder not found")
}

func (f *fakeReminderStore) GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range f.reminders {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReminderStore) UpdateReminder(ctx context.Context, id primitive.ObjectID, reminder *models.Reminder) (*models.Reminder, error) {
	existing := f.find(id)
	if existing == nil {
		return nil, fmt.Errorf("reminder not found")
	}
	*existing = *reminder
	return existing, nil
}

func (f *fakeReminderStore) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	for i, r := range f.reminders {
		if r.ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reminder not found")
}

func (f *fakeReminderStore) GetDueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	var due []models.Reminder
	for _, r := range f.reminders {
		if r.IsActive && !r.NextReminder.After(now) {
			due = append(due, *r)
		}
	}
	return due, nil
}

func (f *fakeReminderStore) UpdateSchedule(ctx context.Context, id primitive.ObjectID, next time.Time, active bool) error {
	if err := f.scheduleErr[id]; err != nil {
		return err
	}
	r := f.find(id)
	if r == nil {
		return fmt.Errorf("reminder not found")
	}
	r.IsActive = active
	if active {
		r.NextReminder = next
	}
	return nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	createErr     error
}

func (f *fakeNotificationStore) byType(notifType string) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeNotificationStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	notif.ID = primitive.NewObjectID()
	f.notifications = append(f.notifications, notif)
	return nil
}

func (f *fakeNotificationStore) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && int64(len(out)) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	for _, n := range f.notifications {
		if n.ID == id && !n.Read {
			now := time.Now()
			n.Read = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	now := time.Now()
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			n.ReadAt = &now
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var kept []*models.Notification
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID {
			count++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return count, nil
}

func (f *fakeNotificationStore) HasRecentDeadlineNotification(ctx context.Context, userID, goalID primitive.ObjectID, daysAhead int, since time.Time) (bool, error) {
	for _, n := range f.notifications {
		if n.Type != models.NotificationTypeDeadline || n.UserID != userID || n.CreatedAt.Before(since) {
			continue
		}
		if n.Metadata["goal_id"] == goalID && n.Metadata["days_ahead"] == daysAhead {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) HasDigestSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (bool, error) {
	for _, n := range f.notifications {
		if n.Type == models.NotificationTypeSystem && n.UserID == userID &&
			n.Title == models.DigestTitle && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*models.Notification
	var count int64
	for _, n := range f.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			count++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return count, nil
}

type fakeGoalStore struct {
	goals []models.Goal
}

func (f *fakeGoalStore) GetGoalsDueOn(ctx context.Context, day time.Time) ([]models.Goal, error) {
	dayStart := startOfDay(day)
	var out []models.Goal
	for _, g := range f.goals {
		if !g.IsCompleted && startOfDay(g.TargetDate).Equal(dayStart) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) CountCompletedGoals(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, g := range f.goals {
		if g.UserID == userID && g.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeGoalStore) HasIncompleteGoals(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	for _, g := range f.goals {
		if g.UserID == userID && !g.IsCompleted {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) GetActiveUsersSince(ctx context.Context, since time.Time) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.IsActive && !u.LastActiveAt.Before(since) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	for _, u := range f.users {
		if u.ID == id {
			u.LastActiveAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("user not found")
}

type fakeProgressStore struct {
	logs []models.ProgressLog
}

func (f *fakeProgressStore) CreateProgressLog(ctx context.Context, log *models.ProgressLog) (*models.ProgressLog, error) {
	log.ID = primitive.NewObjectID()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	f.logs = append(f.logs, *log)
	return log, nil
}

func (f *fakeProgressStore) GetLogDatesSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, l := range f.logs {
		if l.UserID == userID && !l.CreatedAt.Before(since) {
			dates = append(dates, l.CreatedAt)
		}
	}
	return dates, nil
}

type fakeAchievementStore struct {
	achievements []models.Achievement
}

func (f *fakeAchievementStore) HasAchievement(ctx context.Context, userID primitive.ObjectID, achievementType string) (bool, error) {
	for _, a := range f.achievements {
		if a.UserID == userID && a.AchievementType == achievementType {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAchievementStore) CreateAchievement(ctx context.Context, achievement *models.Achievement) error {
	achievement.ID = primitive.NewObjectID()
	f.achievements = append(f.achievements, *achievement)
	return nil
}

func (f *fakeAchievementStore) GetUserAchievements(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	var out []models.Achievement
	for _, a := range f.achievements {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type sentEmail struct {
	subject string
	to      []string
	body    string
}

type fakeMailer struct {
	sent    []sentEmail
	sendErr error
}

func (f *fakeMailer) Send(subject string, to []string, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentEmail{subject: subject, to: to, body: htmlBody})
	return nil
}
