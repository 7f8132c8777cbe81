package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
	now  func() time.Time
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, now: time.Now}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	var rules []string
	if !strings.Contains(cmd.Email, "@") {
		rules = append(rules, "email must be valid")
	}
	if len(cmd.Password) < domain.PasswordMinLength {
		rules = append(rules, fmt.Sprintf("password must be at least %d characters", domain.PasswordMinLength))
	}
	if len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	user, err := h.repo.FindByEmail(ctx, strings.TrimSpace(cmd.Email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := h.now()
	user.LastLogin = &now
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
