package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/internal/user/repository"
	"github.com/tair/pededrink/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()

	registered, err := NewRegisterUserHandler(repo).Handle(ctx, RegisterUserCommand{
		Username: "maria",
		Email:    "maria@pededrink.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, registered.User.Role)
	assert.NotEqual(t, "secret1", registered.User.Password)
	assert.NotEmpty(t, registered.Token)

	resp, err := NewLoginUserHandler(repo).Handle(ctx, LoginUserCommand{
		Email:    "maria@pededrink.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User.LastLogin)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "maria", claims.Username)
}

func TestRegisterValidation(t *testing.T) {
	_, err := NewRegisterUserHandler(repository.NewMemoryUserRepository()).Handle(context.Background(), RegisterUserCommand{
		Username: "ab",
		Email:    "not-an-email",
		Password: "123",
		Role:     "root",
	})

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Rules, 4)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	h := NewRegisterUserHandler(repository.NewMemoryUserRepository())
	_, err := h.Handle(ctx, RegisterUserCommand{Username: "joao", Email: "joao@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = h.Handle(ctx, RegisterUserCommand{Username: "JOAO", Email: "other@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = h.Handle(ctx, RegisterUserCommand{Username: "joana", Email: "joao@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	_, err := NewRegisterUserHandler(repo).EnsureAdmin(ctx, "admin", "admin@pededrink.com", "password")
	require.NoError(t, err)
	login := NewLoginUserHandler(repo)

	_, err = login.Handle(ctx, LoginUserCommand{Email: "admin@pededrink.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = login.Handle(ctx, LoginUserCommand{Email: "nobody@pededrink.com", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	resp, err := login.Handle(ctx, LoginUserCommand{Email: "admin@pededrink.com", Password: "password"})
	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin())
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	h := NewRegisterUserHandler(repo)

	created, err := h.EnsureAdmin(ctx, "admin", "admin@pededrink.com", "password")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = h.EnsureAdmin(ctx, "admin", "admin@pededrink.com", "password")
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	resp, err := NewRegisterUserHandler(repo).Handle(ctx, RegisterUserCommand{Username: "carla", Email: "carla@x.com", Password: "secret1"})
	require.NoError(t, err)
	id := resp.User.ID

	role := domain.RoleAdmin
	updated, err := NewUpdateUserHandler(repo).Handle(ctx, UpdateUserCommand{ID: id, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "carla@x.com", updated.Email)

	token, err := NewRefreshTokenHandler(repo).Handle(ctx, RefreshTokenCommand{UserID: id})
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	del := NewDeleteUserHandler(repo)
	assert.ErrorIs(t, del.Handle(ctx, DeleteUserCommand{ID: id, RequestedBy: id}), ErrSelfDelete)
	require.NoError(t, del.Handle(ctx, DeleteUserCommand{ID: id, RequestedBy: "someone-else"}))
	assert.ErrorIs(t, del.Handle(ctx, DeleteUserCommand{ID: id, RequestedBy: "someone-else"}), domain.ErrUserNotFound)
}
