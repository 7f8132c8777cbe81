package command

import (
	"context"
	"errors"

	"github.com/tair/pededrink/internal/user/domain"
)

// ErrSelfDelete is returned when an admin tries to remove their own account.
var ErrSelfDelete = errors.New("cannot delete the signed-in account")

// DeleteUserCommand represents the command to delete a user
type DeleteUserCommand struct {
	ID          string
	RequestedBy string
}

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if cmd.ID == cmd.RequestedBy {
		return ErrSelfDelete
	}
	return h.repo.Delete(ctx, cmd.ID)
}
