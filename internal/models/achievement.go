package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Achievement is a one-time badge earned by a user. The stored record is what
// prevents the same milestone from being awarded twice.
type Achievement struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	AchievementType string             `bson:"achievement_type" json:"achievement_type"` // e.g. "first_goal", "week_streak"
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	BadgeIcon       string             `bson:"badge_icon,omitempty" json:"badge_icon,omitempty"`
	EarnedAt        time.Time          `bson:"earned_at" json:"earned_at"`
}
