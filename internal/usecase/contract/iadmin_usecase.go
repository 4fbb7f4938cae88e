package usecasecontract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

type IAdminUseCase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	ToggleBan(ctx context.Context, userID string) (*entity.User, error)
	MakeAdmin(ctx context.Context, userID string) (*entity.User, error)
	DeleteUser(ctx context.Context, userID string) error
	Stats(ctx context.Context) (*entity.BrandStats, error)
}
