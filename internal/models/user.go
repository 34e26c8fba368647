package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a learner account. The scheduling core never creates or
// deletes users; it only reads them to address notifications and emails.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastActiveAt time.Time          `bson:"last_active_at,omitempty" json:"last_active_at"`
	Preferences  *Preferences       `bson:"preferences,omitempty" json:"preferences,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Preferences holds per-user notification settings.
type Preferences struct {
	EmailNotifications bool `bson:"email_notifications" json:"email_notifications"`
}

// EmailNotificationsEnabled reports whether the user accepts email
// notifications. Users without stored preferences are opted in.
func (u *User) EmailNotificationsEnabled() bool {
	if u.Preferences == nil {
		return true
	}
	return u.Preferences.EmailNotifications
}
