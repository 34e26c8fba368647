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
)

// GoalRepository handles the goal queries the scheduling core needs. Goal
// creation and editing live in the request layer, not here.
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository.
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// GetGoalByID fetches a goal by its ID.
func (r *GoalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Warn("Failed to find goal by ID")
		return nil, fmt.Errorf("failed to find goal: %v", err)
	}
	return &goal, nil
}

// GetGoalsDueOn fetches all incomplete goals whose target date falls on the
// given calendar day.
func (r *GoalRepository) GetGoalsDueOn(ctx context.Context, day time.Time) ([]models.Goal, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	filter := bson.M{
		"is_completed": false,
		"target_date": bson.M{
			"$gte": dayStart,
			"$lt":  dayEnd,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch goals by target date")
		return nil, fmt.Errorf("failed to fetch goals due on %s: %v", dayStart.Format("2006-01-02"), err)
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %v", err)
	}
	return goals, nil
}

// CountCompletedGoals returns how many goals the user has completed.
func (r *GoalRepository) CountCompletedGoals(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "is_completed": true})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to count completed goals")
		return 0, fmt.Errorf("failed to count completed goals: %v", err)
	}
	return count, nil
}

// HasIncompleteGoals reports whether the user has at least one open goal.
func (r *GoalRepository) HasIncompleteGoals(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "is_completed": false})
	if err != nil {
		return false, fmt.Errorf("failed to count incomplete goals: %v", err)
	}
	return count > 0, nil
}
