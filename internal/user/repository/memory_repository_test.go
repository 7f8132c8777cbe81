package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pededrink/internal/user/domain"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	var repo domain.UserRepository = NewTracingUserRepository(NewMemoryUserRepository())

	first := &domain.User{ID: "u-1", Username: "Admin", Email: "admin@pededrink.com", Role: domain.RoleAdmin, CreatedAt: time.Unix(100, 0)}
	second := &domain.User{ID: "u-2", Username: "clerk", Email: "clerk@pededrink.com", Role: domain.RoleUser, CreatedAt: time.Unix(200, 0)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "u-3", Username: "ADMIN", Email: "x@y.z"}), domain.ErrUsernameTaken)
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "u-3", Username: "other", Email: "CLERK@pededrink.com"}), domain.ErrEmailTaken)

	found, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.ID)

	found, err = repo.FindByEmail(ctx, "Clerk@PedeDrink.com")
	require.NoError(t, err)
	assert.Equal(t, "u-2", found.ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u-2", all[0].ID)

	admins, err := repo.CountByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, admins)

	second.Email = "ADMIN@pededrink.com"
	assert.ErrorIs(t, repo.Update(ctx, second), domain.ErrEmailTaken)

	require.NoError(t, repo.Delete(ctx, "u-2"))
	assert.ErrorIs(t, repo.Delete(ctx, "u-2"), domain.ErrUserNotFound)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
