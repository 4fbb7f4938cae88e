package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/infrastructure/jwt"
	"github.com/classbrand/brandnet/internal/infrastructure/logger"
	passwordservice "github.com/classbrand/brandnet/internal/infrastructure/password_service"
	"github.com/classbrand/brandnet/internal/infrastructure/repository/memory"
	"github.com/classbrand/brandnet/internal/infrastructure/uuidgen"
	"github.com/classbrand/brandnet/internal/infrastructure/validator"
	"github.com/classbrand/brandnet/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserUsecase() (*usecase.UserUsecase, *memory.UserStore) {
	users := memory.NewUserStore()
	mgr := jwt.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	uc := usecase.NewUserUsecase(
		users,
		passwordservice.NewHasher(bcrypt.MinCost),
		jwt.NewJWTService(mgr),
		logger.NewNopLogger(),
		validator.NewValidator(),
		uuidgen.NewGenerator(),
	)
	return uc, users
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newUserUsecase()
	ctx := context.Background()

	user, err := uc.Register(ctx, "Student@Campus.edu", "Password123", "Sam")
	require.NoError(t, err)
	assert.Equal(t, "student@campus.edu", user.Email)
	assert.Equal(t, entity.UserRoleMember, user.Role)
	assert.False(t, user.Banned)

	logged, access, refresh, err := uc.Login(ctx, "student@campus.edu", "Password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	authed, err := uc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegister_Rejects(t *testing.T) {
	uc, _ := newUserUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, "not-an-email", "Password123", "Sam")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = uc.Register(ctx, "sam@campus.edu", "weak", "Sam")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = uc.Register(ctx, "sam@campus.edu", "Password123", "Sam")
	require.NoError(t, err)
	_, err = uc.Register(ctx, "SAM@campus.edu", "Password123", "Sam")
	assert.ErrorIs(t, err, entity.ErrUserExists)
}

func TestLogin_WrongPasswordAndBanned(t *testing.T) {
	uc, users := newUserUsecase()
	ctx := context.Background()

	user, err := uc.Register(ctx, "sam@campus.edu", "Password123", "Sam")
	require.NoError(t, err)

	_, _, _, err = uc.Login(ctx, "sam@campus.edu", "Password124")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	_, _, _, err = uc.Login(ctx, "nobody@campus.edu", "Password123")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = users.UpdateUser(ctx, user.ID, map[string]interface{}{"banned": true})
	require.NoError(t, err)
	_, _, _, err = uc.Login(ctx, "sam@campus.edu", "Password123")
	assert.ErrorIs(t, err, entity.ErrUserBanned)
}

func TestAuthenticate_BannedAfterIssue(t *testing.T) {
	uc, users := newUserUsecase()
	ctx := context.Background()

	user, err := uc.Register(ctx, "sam@campus.edu", "Password123", "Sam")
	require.NoError(t, err)
	_, access, _, err := uc.Login(ctx, "sam@campus.edu", "Password123")
	require.NoError(t, err)

	_, err = users.UpdateUser(ctx, user.ID, map[string]interface{}{"banned": true})
	require.NoError(t, err)

	_, err = uc.Authenticate(ctx, access)
	assert.ErrorIs(t, err, entity.ErrUserBanned)

	_, err = uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestRefreshToken_PicksUpNewRole(t *testing.T) {
	uc, users := newUserUsecase()
	ctx := context.Background()

	user, err := uc.Register(ctx, "sam@campus.edu", "Password123", "Sam")
	require.NoError(t, err)
	_, access, refresh, err := uc.Login(ctx, "sam@campus.edu", "Password123")
	require.NoError(t, err)

	_, _, err = uc.RefreshToken(ctx, access)
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials, "access token is not a refresh token")

	_, err = users.UpdateUser(ctx, user.ID, map[string]interface{}{"role": entity.UserRoleAdmin})
	require.NoError(t, err)

	newAccess, newRefresh, err := uc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newRefresh)

	mgr := jwt.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	claims, err := jwt.NewJWTService(mgr).ParseAccessToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleAdmin, claims.Role)
}

func TestLoginWithOAuth_CreatesThenMerges(t *testing.T) {
	uc, users := newUserUsecase()
	ctx := context.Background()
	photo := "https://lh3.googleusercontent.com/a/photo"

	access, refresh, err := uc.LoginWithOAuth(ctx, "New@Campus.edu", "New Student", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	created, err := users.GetUserByEmail(ctx, "new@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleMember, created.Role)
	assert.Empty(t, created.PasswordHash)
	assert.Nil(t, created.PhotoURL)

	_, _, err = uc.LoginWithOAuth(ctx, "new@campus.edu", "Renamed", &photo)
	require.NoError(t, err)

	merged, err := users.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", merged.DisplayName)
	require.NotNil(t, merged.PhotoURL)
	assert.Equal(t, photo, *merged.PhotoURL)

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// no password login for OAuth-only accounts
	_, _, _, err = uc.Login(ctx, "new@campus.edu", "")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestGetUserByID_NotFound(t *testing.T) {
	uc, _ := newUserUsecase()
	_, err := uc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
