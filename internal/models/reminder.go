package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder recurrence types.
const (
	ReminderTypeDaily    = "daily"
	ReminderTypeWeekly   = "weekly"
	ReminderTypeCustom   = "custom"
	ReminderTypeDeadline = "deadline"
)

// Reminder is a recurring or one-shot scheduled notice owned by a user,
// optionally tied to a goal. NextReminder holds the next fire time; deadline
// reminders are deactivated after their single fire and never re-armed.
type Reminder struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"user_id"`
	GoalID       *primitive.ObjectID `bson:"goal_id,omitempty" json:"goal_id,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Message      string              `bson:"message" json:"message"`
	ReminderType string              `bson:"reminder_type" json:"reminder_type"`
	Frequency    string              `bson:"frequency,omitempty" json:"frequency,omitempty"` // for custom reminders, e.g. "3 days"
	NextReminder time.Time           `bson:"next_reminder" json:"next_reminder"`
	IsActive     bool                `bson:"is_active" json:"is_active"`
	EmailEnabled bool                `bson:"email_enabled" json:"email_enabled"`
	InAppEnabled bool                `bson:"in_app_enabled" json:"in_app_enabled"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}

// ValidReminderType reports whether t is one of the supported recurrence types.
func ValidReminderType(t string) bool {
	switch t {
	case ReminderTypeDaily, ReminderTypeWeekly, ReminderTypeCustom, ReminderTypeDeadline:
		return true
	}
	return false
}
