package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/Aidyn-B/Learning_Dashboard/internal/recurrence"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderService encapsulates reminder CRUD and the due-reminder processing
// job.
type ReminderService struct {
	reminders     ReminderStore
	notifications NotificationStore
	users         UserStore
	mailer        Mailer
	now           func() time.Time
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(reminders ReminderStore, notifications NotificationStore, users UserStore, mailer Mailer) *ReminderService {
	return &ReminderService{
		reminders:     reminders,
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		now:           time.Now,
	}
}

// CreateReminder validates and stores a new reminder for a user.
func (s *ReminderService) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	if reminder.Title == "" {
		return nil, fmt.Errorf("reminder title is required")
	}
	if !models.ValidReminderType(reminder.ReminderType) {
		return nil, fmt.Errorf("invalid reminder type: %q", reminder.ReminderType)
	}
	if reminder.NextReminder.IsZero() {
		return nil, fmt.Errorf("next reminder time is required")
	}

	created, err := s.reminders.CreateReminder(ctx, reminder)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create reminder")
		return nil, fmt.Errorf("failed to create reminder: %v", err)
	}
	return created, nil
}

// GetReminder retrieves a reminder owned by the given user.
func (s *ReminderService) GetReminder(ctx context.Context, id, userID primitive.ObjectID) (*models.Reminder, error) {
	reminder, err := s.reminders.GetReminderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %v", err)
	}
	if reminder.UserID != userID {
		return nil, fmt.Errorf("reminder not found")
	}
	return reminder, nil
}

// GetUserReminders returns all reminders owned by a user.
func (s *ReminderService) GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	return s.reminders.GetUserReminders(ctx, userID)
}

// UpdateReminder applies user edits to an owned reminder.
func (s *ReminderService) UpdateReminder(ctx context.Context, id, userID primitive.ObjectID, updated *models.Reminder) (*models.Reminder, error) {
	existing, err := s.GetReminder(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if updated.ReminderType != "" && !models.ValidReminderType(updated.ReminderType) {
		return nil, fmt.Errorf("invalid reminder type: %q", updated.ReminderType)
	}

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	reminder, err := s.reminders.UpdateReminder(ctx, id, updated)
	if err != nil {
		logger.Log.WithField("reminder_id", id.Hex()).WithError(err).Error("Failed to update reminder")
		return nil, fmt.Errorf("failed to update reminder: %v", err)
	}
	return reminder, nil
}

// DeleteReminder removes a reminder owned by the given user.
func (s *ReminderService) DeleteReminder(ctx context.Context, id, userID primitive.ObjectID) error {
	if _, err := s.GetReminder(ctx, id, userID); err != nil {
		return err
	}
	return s.reminders.DeleteReminder(ctx, id)
}

// ProcessDueReminders fires every active reminder whose next fire time has
// passed: creates the in-app notification, attempts the email, and advances
// the schedule. Each reminder commits independently; one failing reminder is
// logged and skipped so the rest of the batch still fires. A reminder whose
// schedule fails to advance will re-fire on the next run, which is accepted.
func (s *ReminderService) ProcessDueReminders(ctx context.Context) RunResult {
	now := s.now()

	due, err := s.reminders.GetDueReminders(ctx, now)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch due reminders")
		return failedRun(err)
	}

	var itemErrs []error
	processed := 0
	for i := range due {
		if err := s.fireReminder(ctx, &due[i], now); err != nil {
			logrus.WithError(err).WithField("reminder_id", due[i].ID.Hex()).Warn("Failed to process reminder")
			itemErrs = append(itemErrs, err)
			continue
		}
		processed++
	}

	if processed > 0 || len(itemErrs) > 0 {
		logger.Log.WithFields(map[string]interface{}{
			"processed": processed,
			"failed":    len(itemErrs),
		}).Info("Due reminders processed")
	}
	return batchRun(processed, itemErrs)
}

func (s *ReminderService) fireReminder(ctx context.Context, reminder *models.Reminder, now time.Time) error {
	if reminder.InAppEnabled {
		notif := &models.Notification{
			UserID:    reminder.UserID,
			Type:      models.NotificationTypeReminder,
			Title:     reminder.Title,
			Message:   reminder.Message,
			ActionURL: goalActionURL(reminder.GoalID),
			Metadata:  bson.M{"reminder_id": reminder.ID},
		}
		if err := s.notifications.CreateNotification(ctx, notif); err != nil {
			return fmt.Errorf("failed to create reminder notification: %v", err)
		}
	}

	if reminder.EmailEnabled {
		s.emailReminder(ctx, reminder)
	}

	next, active := recurrence.Next(reminder.ReminderType, reminder.Frequency, now)
	if err := s.reminders.UpdateSchedule(ctx, reminder.ID, next, active); err != nil {
		return fmt.Errorf("failed to advance reminder schedule: %v", err)
	}
	return nil
}

// emailReminder is best-effort: any failure is logged and swallowed so the
// reminder still advances.
func (s *ReminderService) emailReminder(ctx context.Context, reminder *models.Reminder) {
	user, err := s.users.GetUserByID(ctx, reminder.UserID)
	if err != nil {
		logrus.WithError(err).WithField("reminder_id", reminder.ID.Hex()).Warn("Failed to load reminder owner for email")
		return
	}

	subject := fmt.Sprintf("Reminder: %s", reminder.Title)
	body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", reminder.Title, reminder.Message)
	if err := s.mailer.Send(subject, []string{user.Email}, body); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"reminder_id": reminder.ID.Hex(),
			"user_id":     user.ID.Hex(),
		}).Warn("Failed to send reminder email")
	}
}

func goalActionURL(goalID *primitive.ObjectID) string {
	if goalID == nil {
		return ""
	}
	return fmt.Sprintf("/goals/%s", goalID.Hex())
}
