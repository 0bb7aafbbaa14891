package query

import (
	"fmt"

	"github.com/tair/foodgram/internal/user/domain"
)

// GetStatsQuery represents the admin query for account statistics
type GetStatsQuery struct{}

// UserStats holds aggregate account numbers
type UserStats struct {
	TotalUsers int64 `json:"total_users"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

func (h *GetStatsHandler) Handle(query GetStatsQuery) (*UserStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &UserStats{TotalUsers: total}, nil
}
