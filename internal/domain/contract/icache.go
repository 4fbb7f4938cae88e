package contract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// CachedBrandsPage is the cached payload for list endpoints.
type CachedBrandsPage struct {
	Brands []entity.Brand `json:"brands"`
	Total  int64          `json:"total"`
}

// IBrandCache defines caching operations for brands.
type IBrandCache interface {
	// Detail (by id)
	GetBrand(ctx context.Context, brandID string) (*entity.Brand, bool, error)
	SetBrand(ctx context.Context, brand *entity.Brand) error
	InvalidateBrand(ctx context.Context, brandID string) error

	// List pages (key built by usecase)
	GetBrandsPage(ctx context.Context, key string) (*CachedBrandsPage, bool, error)
	SetBrandsPage(ctx context.Context, key string, page *CachedBrandsPage) error
	InvalidateBrandLists(ctx context.Context) error
}
