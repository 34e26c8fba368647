package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReminderRepository handles database operations related to reminders.
type ReminderRepository struct {
	collection *mongo.Collection
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{
		collection: db.Collection("reminders"),
	}
}

// CreateReminder inserts a new reminder into the database.
func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert reminder")
		return nil, fmt.Errorf("failed to create reminder: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted reminder ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	reminder.ID = insertedID

	logger.Log.WithField("reminder_id", reminder.ID.Hex()).Info("Reminder created successfully")
	return reminder, nil
}

// GetReminderByID fetches a reminder by its ID.
func (r *ReminderRepository) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder)
	if err != nil {
		logger.Log.WithError(err).WithField("reminder_id", id.Hex()).Warn("Failed to find reminder by ID")
		return nil, fmt.Errorf("failed to find reminder: %v", err)
	}
	return &reminder, nil
}

// GetUserReminders fetches all reminders owned by a user, newest first.
func (r *ReminderRepository) GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch user reminders")
		return nil, fmt.Errorf("failed to fetch reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %v", err)
	}
	return reminders, nil
}

// UpdateReminder updates an existing reminder.
func (r *ReminderRepository) UpdateReminder(ctx context.Context, id primitive.ObjectID, reminder *models.Reminder) (*models.Reminder, error) {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": reminder})
	if err != nil {
		logger.Log.WithError(err).WithField("reminder_id", id.Hex()).Error("Failed to update reminder")
		return nil, fmt.Errorf("failed to update reminder: %v", err)
	}

	logger.Log.WithField("reminder_id", id.Hex()).Info("Reminder updated successfully")
	return reminder, nil
}

// DeleteReminder deletes a reminder from the database by its ID.
func (r *ReminderRepository) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("reminder_id", id.Hex()).Error("Failed to delete reminder")
		return fmt.Errorf("failed to delete reminder: %v", err)
	}

	logger.Log.WithField("reminder_id", id.Hex()).Info("Reminder deleted successfully")
	return nil
}

// GetDueReminders fetches all active reminders whose next fire time has
// passed. This is the working set of one processing run.
func (r *ReminderRepository) GetDueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"is_active":     true,
		"next_reminder": bson.M{"$lte": now},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch due reminders")
		return nil, fmt.Errorf("failed to fetch due reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode due reminders: %v", err)
	}
	return reminders, nil
}

// UpdateSchedule advances a reminder to its next fire time, or deactivates it
// when active is false. Each reminder is committed on its own so a failure
// here only affects the one reminder being advanced.
func (r *ReminderRepository) UpdateSchedule(ctx context.Context, id primitive.ObjectID, next time.Time, active bool) error {
	update := bson.M{"is_active": active}
	if active {
		update["next_reminder"] = next
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("reminder_id", id.Hex()).Error("Failed to update reminder schedule")
		return fmt.Errorf("failed to update reminder schedule: %v", err)
	}
	return nil
}
