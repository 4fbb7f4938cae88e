package contract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateUser sets the given fields and returns the updated user.
	UpdateUser(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	CountUsers(ctx context.Context) (int64, error)
	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, id string) error
}
