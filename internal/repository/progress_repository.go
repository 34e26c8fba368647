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

// ProgressRepository handles study progress logs.
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new instance of ProgressRepository.
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("progress_logs"),
	}
}

// CreateProgressLog inserts a new progress log entry.
func (r *ProgressRepository) CreateProgressLog(ctx context.Context, log *models.ProgressLog) (*models.ProgressLog, error) {
	log.CreatedAt = time.Now()
	if log.ActivityType == "" {
		log.ActivityType = "study"
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert progress log")
		return nil, fmt.Errorf("failed to create progress log: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	log.ID = insertedID

	logger.Log.WithFields(map[string]interface{}{
		"user_id": log.UserID.Hex(),
		"minutes": log.Minutes,
	}).Info("Progress log created")
	return log, nil
}

// GetLogDatesSince returns the creation times of the user's progress logs
// since the given time, newest first. Used for streak calculation.
func (r *ProgressRepository) GetLogDatesSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"created_at": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress log dates: %v", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode progress log dates: %v", err)
	}

	dates := make([]time.Time, 0, len(docs))
	for _, doc := range docs {
		dates = append(dates, doc.CreatedAt)
	}
	return dates, nil
}
