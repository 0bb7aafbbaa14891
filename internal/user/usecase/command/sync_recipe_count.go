package command

import (
	"errors"
	"fmt"

	"github.com/tair/foodgram/internal/user/domain"
)

// SyncRecipeCountCommand shifts an author's denormalized recipe counter.
// It is fed by the recipe event consumer, not by an HTTP route.
type SyncRecipeCountCommand struct {
	AuthorID uint
	Delta    int
}

// SyncRecipeCountHandler handles recipe count projection updates
type SyncRecipeCountHandler struct {
	repo domain.UserRepository
}

// NewSyncRecipeCountHandler creates a new sync recipe count handler
func NewSyncRecipeCountHandler(repo domain.UserRepository) *SyncRecipeCountHandler {
	return &SyncRecipeCountHandler{repo: repo}
}

// Handle executes the sync recipe count command. Events for authors that
// no longer exist are dropped so a late delete event cannot wedge the
// consumer group.
func (h *SyncRecipeCountHandler) Handle(cmd SyncRecipeCountCommand) error {
	if cmd.AuthorID == 0 {
		return fmt.Errorf("invalid author id")
	}
	if cmd.Delta == 0 {
		return nil
	}

	err := h.repo.AdjustRecipeCount(cmd.AuthorID, cmd.Delta)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
