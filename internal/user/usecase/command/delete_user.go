package command

import (
	"fmt"

	"github.com/tair/foodgram/internal/user/domain"
)

// DeleteUserCommand represents the command to remove an account
type DeleteUserCommand struct {
	ID uint
}

// DeleteUserHandler handles account deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle removes the account. Follows referencing it go with it via the
// foreign keys.
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid user id")
	}
	return h.repo.Delete(cmd.ID)
}
