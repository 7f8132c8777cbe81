package command

import (
	"context"
	"strings"

	"github.com/tair/pededrink/internal/user/domain"
)

// UpdateUserCommand represents the command to update a user. Nil fields are
// left untouched.
type UpdateUserCommand struct {
	ID    string
	Email *string
	Role  *string
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	var rules []string
	if cmd.Email != nil && !strings.Contains(*cmd.Email, "@") {
		rules = append(rules, "email must be valid")
	}
	if cmd.Role != nil && !domain.ValidRole(*cmd.Role) {
		rules = append(rules, "role must be user or admin")
	}
	if len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	user, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != nil {
		user.Email = strings.TrimSpace(*cmd.Email)
	}
	if cmd.Role != nil {
		user.Role = *cmd.Role
	}

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
