package command

import (
	"fmt"
	"time"

	"github.com/tair/foodgram/internal/user/domain"
)

// UpdateUserCommand represents the command to edit a user's own profile
type UpdateUserCommand struct {
	ID        uint
	Email     string
	FirstName string
	LastName  string
	Bio       string
}

// UpdateUserHandler handles profile update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle replaces the editable profile fields. Username, password and
// role are changed through their own commands.
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	switch {
	case cmd.ID == 0:
		return nil, fmt.Errorf("invalid user id")
	case cmd.Email == "":
		return nil, fmt.Errorf("email is required")
	case cmd.FirstName == "":
		return nil, fmt.Errorf("first name is required")
	case cmd.LastName == "":
		return nil, fmt.Errorf("last name is required")
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	user.Email = cmd.Email
	user.FirstName = cmd.FirstName
	user.LastName = cmd.LastName
	user.Bio = cmd.Bio
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
