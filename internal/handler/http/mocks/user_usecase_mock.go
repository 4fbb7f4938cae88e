package mocks

import (
	"context"
	"errors"

	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser     bool
	ShouldFailLogin          bool
	ShouldFailGetByID        bool
	ShouldFailRefreshToken   bool
	ShouldFailAuthenticate   bool
	ShouldFailLoginWithOAuth bool
	// AuthenticateErr overrides the error returned by Authenticate when set.
	AuthenticateErr error

	// Return values
	MockUser         entity.User
	MockAccessToken  string
	MockRefreshToken string
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:          "mock-user-id",
			Email:       "test@example.com",
			DisplayName: "testuser",
			Role:        entity.UserRoleMember,
		},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, email, password, displayName string) (*entity.User, error) {
	if m.ShouldFailCreateUser {
		return nil, entity.ErrUserExists
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	if m.ShouldFailLogin {
		return nil, "", "", entity.ErrInvalidCredentials
	}
	return &m.MockUser, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if m.AuthenticateErr != nil {
		return nil, m.AuthenticateErr
	}
	if m.ShouldFailAuthenticate || accessToken != m.MockAccessToken {
		return nil, entity.ErrInvalidCredentials
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.ShouldFailRefreshToken {
		return "", "", entity.ErrInvalidCredentials
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, email, displayName string, photoURL *string) (string, string, error) {
	if m.ShouldFailLoginWithOAuth {
		return "", "", errors.New("oauth login failed")
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, entity.ErrUserNotFound
	}
	return &m.MockUser, nil
}
