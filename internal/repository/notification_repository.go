package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

// GetUserNotifications returns the latest notifications for a user.
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

// MarkAsRead sets a notification's read flag and records when it was read.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": now}},
	)
	return err
}

// MarkAllRead marks every unread notification of a user as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	now := time.Now()
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %v", err)
	}
	return result.ModifiedCount, nil
}

// DeleteAllForUser removes every notification owned by a user.
func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %v", err)
	}
	return result.DeletedCount, nil
}

// HasRecentDeadlineNotification reports whether a deadline notification for
// the given (goal, window) pair was created since the given time. The lookup
// matches the structured metadata fields by equality.
func (r *NotificationRepository) HasRecentDeadlineNotification(ctx context.Context, userID, goalID primitive.ObjectID, daysAhead int, since time.Time) (bool, error) {
	filter := bson.M{
		"user_id":             userID,
		"type":                models.NotificationTypeDeadline,
		"metadata.goal_id":    goalID,
		"metadata.days_ahead": daysAhead,
		"created_at":          bson.M{"$gte": since},
	}

	err := r.collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up deadline notification: %v", err)
	}
	return true, nil
}

// HasDigestSince reports whether the user already received a daily digest
// notification created at or after the given time (start of the current day).
func (r *NotificationRepository) HasDigestSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (bool, error) {
	filter := bson.M{
		"user_id":    userID,
		"type":       models.NotificationTypeSystem,
		"title":      models.DigestTitle,
		"created_at": bson.M{"$gte": since},
	}

	err := r.collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up digest notification: %v", err)
	}
	return true, nil
}

// DeleteReadOlderThan removes notifications that are read and were created
// before the cutoff. Deletion is irreversible.
func (r *NotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"read":       true,
		"created_at": bson.M{"$lt": cutoff},
	}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %v", err)
	}

	logrus.WithField("count", result.DeletedCount).Info("Deleted old read notifications")
	return result.DeletedCount, nil
}
