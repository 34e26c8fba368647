package services

import (
	"context"
	"fmt"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService exposes the small user surface the core needs: lookups for
// notification addressing and the last-active touch used by the digest's
// activity window.
type UserService struct {
	users UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// UpdateLastActive stamps the user's last activity time.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.users.UpdateLastActive(ctx, id)
}
