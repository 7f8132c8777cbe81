package command

import (
	"context"
	"fmt"

	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/pkg/auth"
)

// RefreshTokenCommand asks for a new token for an authenticated user
type RefreshTokenCommand struct {
	UserID string
}

// RefreshTokenHandler reissues tokens from the current account state, so a
// role change takes effect on the next refresh.
type RefreshTokenHandler struct {
	repo domain.UserRepository
}

func NewRefreshTokenHandler(repo domain.UserRepository) *RefreshTokenHandler {
	return &RefreshTokenHandler{repo: repo}
}

func (h *RefreshTokenHandler) Handle(ctx context.Context, cmd RefreshTokenCommand) (string, error) {
	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
