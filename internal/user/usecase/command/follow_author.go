package command

import (
	"errors"
	"time"

	"github.com/tair/foodgram/internal/user/domain"
)

// ErrSelfFollow rejects subscribing to yourself
var ErrSelfFollow = errors.New("cannot subscribe to yourself")

// FollowAuthorCommand represents the command to subscribe to an author
type FollowAuthorCommand struct {
	UserID   uint
	AuthorID uint
}

// FollowAuthorHandler handles author subscription command
type FollowAuthorHandler struct {
	users   domain.UserRepository
	follows domain.FollowRepository
}

// NewFollowAuthorHandler creates a new follow author handler
func NewFollowAuthorHandler(users domain.UserRepository, follows domain.FollowRepository) *FollowAuthorHandler {
	return &FollowAuthorHandler{users: users, follows: follows}
}

// Handle executes the follow author command. A repeated subscribe trips
// the unique pair index and comes back as ErrConflict.
func (h *FollowAuthorHandler) Handle(cmd FollowAuthorCommand) (*domain.User, error) {
	if cmd.UserID == cmd.AuthorID {
		return nil, ErrSelfFollow
	}

	author, err := h.users.FindByID(cmd.AuthorID)
	if err != nil {
		return nil, err
	}

	follow := &domain.Follow{
		UserID:    cmd.UserID,
		AuthorID:  cmd.AuthorID,
		CreatedAt: time.Now(),
	}
	if err := h.follows.Add(follow); err != nil {
		return nil, err
	}

	return author, nil
}

// UnfollowAuthorCommand represents the command to drop a subscription
type UnfollowAuthorCommand struct {
	UserID   uint
	AuthorID uint
}

// UnfollowAuthorHandler handles author unsubscription command
type UnfollowAuthorHandler struct {
	follows domain.FollowRepository
}

// NewUnfollowAuthorHandler creates a new unfollow author handler
func NewUnfollowAuthorHandler(follows domain.FollowRepository) *UnfollowAuthorHandler {
	return &UnfollowAuthorHandler{follows: follows}
}

// Handle executes the unfollow author command. Removing a subscription
// that never existed reports ErrNotFound.
func (h *UnfollowAuthorHandler) Handle(cmd UnfollowAuthorCommand) error {
	return h.follows.Remove(cmd.UserID, cmd.AuthorID)
}
