package usecasecontract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// BrandInput carries the editable profile fields of a brand.
type BrandInput struct {
	Name         string
	Description  string
	Category     string
	InstagramURL string
	FacebookURL  string
}

type IBrandUseCase interface {
	CreateBrand(ctx context.Context, ownerID string, in BrandInput) (*entity.Brand, error)
	UpdateBrand(ctx context.Context, brandID, actorID string, in BrandInput) (*entity.Brand, error)
	DeleteBrand(ctx context.Context, brandID, actorID string, isAdmin bool) error
	GetBrand(ctx context.Context, brandID string) (*entity.Brand, error)
	// CachedOwner returns the owner of a cached brand without reading the store.
	CachedOwner(ctx context.Context, brandID string) (ownerID string, ok bool)
	ListBrands(ctx context.Context, page, pageSize int) ([]entity.Brand, int64, error)
	ListBrandsByOwner(ctx context.Context, ownerID string) ([]entity.Brand, error)
}
