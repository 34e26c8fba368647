package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DigestTitle marks the once-per-day motivational digest notification. The
// digest generator uses it to detect a digest already sent today.
const DigestTitle = "🌅 Daily Motivation"

// Notification types.
const (
	NotificationTypeReminder    = "reminder"
	NotificationTypeDeadline    = "deadline"
	NotificationTypeAchievement = "achievement"
	NotificationTypeSystem      = "system"
)

// Notification is a persisted, user-visible message with read state. Metadata
// carries producer-specific fields (e.g. goal_id and days_ahead for deadline
// notices) stored as queryable structured values so producers can deduplicate
// by equality instead of string matching.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
	ActionURL string             `bson:"action_url,omitempty" json:"action_url,omitempty"`
	Metadata  bson.M             `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
