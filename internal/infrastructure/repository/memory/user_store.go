package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
)

// UserStore keeps users in process memory.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]entity.User)}
}

var _ contract.IUserRepository = (*UserStore)(nil)

func (s *UserStore) CreateUser(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return entity.ErrUserExists
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (s *UserStore) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	for field, value := range updates {
		var err error
		switch field {
		case "display_name":
			err = setField(&u.DisplayName, field, value)
		case "photo_url":
			err = setField(&u.PhotoURL, field, value)
		case "password_hash":
			err = setField(&u.PasswordHash, field, value)
		case "role":
			err = setField(&u.Role, field, value)
		case "banned":
			err = setField(&u.Banned, field, value)
		case "updated_at":
			err = setField(&u.UpdatedAt, field, value)
		default:
			err = fmt.Errorf("field %q cannot be updated", field)
		}
		if err != nil {
			return nil, err
		}
	}
	s.users[id] = u
	return &u, nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *UserStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}
