package query

import (
	"context"
	"fmt"

	"github.com/tair/pededrink/internal/user/domain"
)

// ListUsersQuery represents the query to list users, optionally by role
type ListUsersQuery struct {
	Role string
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]domain.User, error) {
	if query.Role != "" && !domain.ValidRole(query.Role) {
		return nil, &domain.ValidationError{Rules: []string{"role must be user or admin"}}
	}

	users, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if query.Role == "" {
		return users, nil
	}

	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == query.Role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}
