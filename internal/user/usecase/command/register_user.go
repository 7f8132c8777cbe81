package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	Role     string // Optional, defaults to "user"
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
	now  func() time.Time
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, now: time.Now}
}

// Handle executes the register user command and issues a token for the new
// account.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*LoginResponse, error) {
	user, err := h.create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Token: token, User: user}, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered. It reports whether an account was created.
func (h *RegisterUserHandler) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if _, err := h.repo.FindByEmail(ctx, email); err == nil {
		return false, nil
	}
	_, err := h.create(ctx, RegisterUserCommand{
		Username: username,
		Email:    email,
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (h *RegisterUserHandler) create(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(cmd.Email)
	// Set default role if not provided
	if cmd.Role == "" {
		cmd.Role = domain.RoleUser
	}

	var rules []string
	if len(cmd.Username) < domain.UsernameMinLength {
		rules = append(rules, fmt.Sprintf("username must be at least %d characters", domain.UsernameMinLength))
	}
	if len(cmd.Password) < domain.PasswordMinLength {
		rules = append(rules, fmt.Sprintf("password must be at least %d characters", domain.PasswordMinLength))
	}
	if !strings.Contains(cmd.Email, "@") {
		rules = append(rules, "email must be valid")
	}
	if !domain.ValidRole(cmd.Role) {
		rules = append(rules, "role must be user or admin")
	}
	if len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  hashedPassword,
		Role:      cmd.Role,
		CreatedAt: h.now(),
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
