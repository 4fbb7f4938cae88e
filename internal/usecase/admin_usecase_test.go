package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/infrastructure/logger"
	"github.com/classbrand/brandnet/internal/infrastructure/repository/memory"
	"github.com/classbrand/brandnet/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	uc     *usecase.AdminUseCase
	users  *memory.UserStore
	brands *memory.BrandStore
	cache  *fakeCache
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()
	users := memory.NewUserStore()
	brands := memory.NewBrandStore()
	cache := newFakeCache()
	uc := usecase.NewAdminUseCase(users, brands, logger.NewNopLogger())
	uc.SetBrandCache(cache)

	ctx := context.Background()
	now := time.Now()
	for _, id := range []string{"alice", "bob"} {
		require.NoError(t, users.CreateUser(ctx, &entity.User{
			ID:        id,
			Email:     id + "@campus.edu",
			Role:      entity.UserRoleMember,
			CreatedAt: now,
		}))
	}
	require.NoError(t, brands.CreateBrand(ctx, &entity.Brand{
		ID: "b1", OwnerID: "alice", Name: "Alice Art",
		Likers: []string{"bob"}, LikeCount: 1, CreatedAt: now,
	}))
	require.NoError(t, brands.CreateBrand(ctx, &entity.Brand{
		ID: "b2", OwnerID: "bob", Name: "Bob Bikes",
		Followers: []string{"alice"}, FollowerCount: 1,
		Likers: []string{"alice"}, LikeCount: 1, CreatedAt: now,
	}))
	return adminFixture{uc: uc, users: users, brands: brands, cache: cache}
}

func TestAdmin_ToggleBan(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	u, err := f.uc.ToggleBan(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, u.Banned)

	u, err = f.uc.ToggleBan(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, u.Banned)

	_, err = f.uc.ToggleBan(ctx, "nobody")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestAdmin_MakeAdmin(t *testing.T) {
	f := newAdminFixture(t)

	u, err := f.uc.MakeAdmin(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestAdmin_DeleteUserRemovesTheirBrands(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.DeleteUser(ctx, "alice"))

	_, err := f.users.GetUserByID(ctx, "alice")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	_, err = f.brands.GetBrandByID(ctx, "b1")
	assert.ErrorIs(t, err, entity.ErrBrandNotFound)
	_, err = f.brands.GetBrandByID(ctx, "b2")
	assert.NoError(t, err)

	assert.Equal(t, []string{"b1"}, f.cache.invalidated)
	assert.Equal(t, 1, f.cache.listInvalidations)
}

func TestAdmin_Stats(t *testing.T) {
	f := newAdminFixture(t)

	stats, err := f.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entity.BrandStats{
		TotalUsers:     2,
		TotalBrands:    2,
		TotalLikes:     2,
		TotalFollowers: 1,
	}, stats)
}

func TestAdmin_ListUsers(t *testing.T) {
	f := newAdminFixture(t)

	users, err := f.uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
