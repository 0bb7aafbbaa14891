package query

import (
	"fmt"

	"github.com/tair/foodgram/internal/user/domain"
)

// ListSubscriptionsQuery represents the query to list followed authors
type ListSubscriptionsQuery struct {
	UserID uint
	Limit  int
	Offset int
}

// ListSubscriptionsHandler handles subscriptions listing query
type ListSubscriptionsHandler struct {
	follows domain.FollowRepository
}

// NewListSubscriptionsHandler creates a new list subscriptions handler
func NewListSubscriptionsHandler(follows domain.FollowRepository) *ListSubscriptionsHandler {
	return &ListSubscriptionsHandler{follows: follows}
}

// Handle executes the list subscriptions query
func (h *ListSubscriptionsHandler) Handle(query ListSubscriptionsQuery) ([]domain.User, int64, error) {
	if query.UserID == 0 {
		return nil, 0, fmt.Errorf("invalid user id")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	authors, err := h.follows.ListAuthors(query.UserID, limit, query.Offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := h.follows.CountAuthors(query.UserID)
	if err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}
