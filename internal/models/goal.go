package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is a learning goal with an optional target date. Goal CRUD belongs to
// the request layer; the scheduling core reads goals for deadline checks and
// achievement counting.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"`
	Status      string             `bson:"status" json:"status"` // "active", "completed"
	Progress    float64            `bson:"progress" json:"progress"`
	TargetDate  time.Time          `bson:"target_date,omitempty" json:"target_date"`
	IsCompleted bool               `bson:"is_completed" json:"is_completed"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
