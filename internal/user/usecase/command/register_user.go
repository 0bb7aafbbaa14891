package command

import (
	"fmt"
	"time"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
)

// RegisterUserCommand represents the command to register a new account
type RegisterUserCommand struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       string
	Role      string // defaults to "user" when empty
}

func (cmd RegisterUserCommand) validate() error {
	switch {
	case cmd.Username == "":
		return fmt.Errorf("username is required")
	case cmd.Email == "":
		return fmt.Errorf("email is required")
	case cmd.Password == "":
		return fmt.Errorf("password is required")
	case len(cmd.Password) < 6:
		return fmt.Errorf("password must be at least 6 characters")
	case cmd.FirstName == "":
		return fmt.Errorf("first name is required")
	case cmd.LastName == "":
		return fmt.Errorf("last name is required")
	}
	if cmd.Role != "" && cmd.Role != domain.RoleUser && cmd.Role != domain.RoleAdmin {
		return fmt.Errorf("invalid role")
	}
	return nil
}

// RegisterUserHandler handles account registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle registers the account with a bcrypt-hashed password. A taken
// username or email trips the unique indexes and surfaces as ErrConflict,
// so there is no check-then-act race.
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := cmd.Role
	if role == "" {
		role = domain.RoleUser
	}

	now := time.Now()
	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  hashed,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Bio:       cmd.Bio,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
