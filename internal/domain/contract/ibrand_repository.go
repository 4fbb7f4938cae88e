package contract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// IBrandRepository provides methods for managing brand profiles.
type IBrandRepository interface {
	CreateBrand(ctx context.Context, brand *entity.Brand) error
	GetBrandByID(ctx context.Context, brandID string) (*entity.Brand, error)
	// UpdateBrand sets profile fields. Relation sets and counts are never part of updates.
	UpdateBrand(ctx context.Context, brandID string, updates map[string]interface{}) error
	DeleteBrand(ctx context.Context, brandID string) error
	ListBrands(ctx context.Context, page, pageSize int) ([]*entity.Brand, int64, error)
	ListBrandsByOwner(ctx context.Context, ownerID string) ([]*entity.Brand, error)
	// DeleteBrandsByOwner removes every brand owned by ownerID and returns how many were removed.
	DeleteBrandsByOwner(ctx context.Context, ownerID string) (int64, error)
	// AggregateCounts returns the brand total plus the sums of like and follower counts.
	AggregateCounts(ctx context.Context) (brands, likes, followers int64, err error)
}
