package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressLog records study minutes logged by a user, optionally against a
// goal. Log dates feed the learning-streak calculation.
type ProgressLog struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"user_id"`
	GoalID       *primitive.ObjectID `bson:"goal_id,omitempty" json:"goal_id,omitempty"`
	Minutes      int                 `bson:"minutes" json:"minutes"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	ActivityType string              `bson:"activity_type" json:"activity_type"` // "study", "reading", "practice"
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}
