package mocks

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

type MockAdminUsecase struct {
	Users map[string]entity.User
	Err   error
	Stat  entity.BrandStats
}

var _ usecasecontract.IAdminUseCase = (*MockAdminUsecase)(nil)

func NewMockAdminUsecase(users ...entity.User) *MockAdminUsecase {
	m := &MockAdminUsecase{Users: make(map[string]entity.User)}
	for _, u := range users {
		m.Users[u.ID] = u
	}
	return m
}

func (m *MockAdminUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]entity.User, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, u)
	}
	return out, nil
}

func (m *MockAdminUsecase) ToggleBan(ctx context.Context, userID string) (*entity.User, error) {
	u, ok := m.Users[userID]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	u.Banned = !u.Banned
	m.Users[userID] = u
	return &u, nil
}

func (m *MockAdminUsecase) MakeAdmin(ctx context.Context, userID string) (*entity.User, error) {
	u, ok := m.Users[userID]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	u.Role = entity.UserRoleAdmin
	m.Users[userID] = u
	return &u, nil
}

func (m *MockAdminUsecase) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := m.Users[userID]; !ok {
		return entity.ErrUserNotFound
	}
	delete(m.Users, userID)
	return nil
}

func (m *MockAdminUsecase) Stats(ctx context.Context) (*entity.BrandStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s := m.Stat
	return &s, nil
}
