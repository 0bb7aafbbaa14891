package query

import (
	"fmt"

	"github.com/tair/foodgram/internal/user/domain"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	ID uint
}

// UserProfile is a user together with the caller's subscription state
type UserProfile struct {
	*domain.User
	IsSubscribed bool `json:"is_subscribed"`
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	users   domain.UserRepository
	follows domain.FollowRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(users domain.UserRepository, follows domain.FollowRepository) *GetUserHandler {
	return &GetUserHandler{users: users, follows: follows}
}

// Handle executes the get user query. ViewerID zero means an anonymous
// request and skips the subscription lookup.
func (h *GetUserHandler) Handle(query GetUserQuery, viewerID uint) (*UserProfile, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := h.users.FindByID(query.ID)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{User: user}
	if viewerID != 0 && viewerID != user.ID {
		subscribed, err := h.follows.Exists(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsSubscribed = subscribed
	}

	return profile, nil
}
