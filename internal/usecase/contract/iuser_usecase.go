package usecasecontract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// UserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, email, password, displayName string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	LoginWithOAuth(ctx context.Context, email, displayName string, photoURL *string) (string, string, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
}
