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

// AchievementRepository handles earned achievement records.
type AchievementRepository struct {
	collection *mongo.Collection
}

// NewAchievementRepository creates a new instance of AchievementRepository.
func NewAchievementRepository(db *mongo.Database) *AchievementRepository {
	return &AchievementRepository{
		collection: db.Collection("achievements"),
	}
}

// HasAchievement reports whether the user already earned the given
// achievement type.
func (r *AchievementRepository) HasAchievement(ctx context.Context, userID primitive.ObjectID, achievementType string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user_id":          userID,
		"achievement_type": achievementType,
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up achievement: %v", err)
	}
	return count > 0, nil
}

// CreateAchievement records a newly earned achievement.
func (r *AchievementRepository) CreateAchievement(ctx context.Context, achievement *models.Achievement) error {
	if achievement.EarnedAt.IsZero() {
		achievement.EarnedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, achievement)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert achievement")
		return fmt.Errorf("failed to create achievement: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":          achievement.UserID.Hex(),
		"achievement_type": achievement.AchievementType,
	}).Info("Achievement earned")
	return nil
}

// GetUserAchievements returns all achievements earned by a user, newest first.
func (r *AchievementRepository) GetUserAchievements(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "earned_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %v", err)
	}
	defer cursor.Close(ctx)

	var achievements []models.Achievement
	if err := cursor.All(ctx, &achievements); err != nil {
		return nil, fmt.Errorf("failed to decode achievements: %v", err)
	}
	return achievements, nil
}
