package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/infrastructure/metrics"
	"github.com/classbrand/brandnet/internal/infrastructure/store"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BrandUseCase implements brand profile management.
type BrandUseCase struct {
	brandRepo  contract.IBrandRepository
	uuidgen    contract.IUUIDGenerator
	validator  usecasecontract.IValidator
	logger     usecasecontract.IAppLogger
	brandCache contract.IBrandCache
}

// NewBrandUseCase creates a new instance of BrandUseCase
func NewBrandUseCase(brandRepo contract.IBrandRepository, uuidgen contract.IUUIDGenerator, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *BrandUseCase {
	return &BrandUseCase{
		brandRepo: brandRepo,
		uuidgen:   uuidgen,
		validator: validator,
		logger:    logger,
	}
}

// check if BrandUseCase implements the IBrandUseCase
var _ usecasecontract.IBrandUseCase = (*BrandUseCase)(nil)

// SetBrandCache enables read-through caching of brand details and list pages.
func (uc *BrandUseCase) SetBrandCache(cache contract.IBrandCache) {
	uc.brandCache = cache
}

// normalizeBrandInput trims every field and applies the category default.
func normalizeBrandInput(in usecasecontract.BrandInput) usecasecontract.BrandInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.InstagramURL = strings.TrimSpace(in.InstagramURL)
	in.FacebookURL = strings.TrimSpace(in.FacebookURL)
	if in.Category == "" {
		in.Category = entity.DefaultCategory
	}
	return in
}

func (uc *BrandUseCase) validateBrandInput(in usecasecontract.BrandInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: brand name is required", entity.ErrInvalidInput)
	}
	if err := uc.validator.ValidateHTTPSURL(in.InstagramURL); err != nil {
		return fmt.Errorf("%w: instagram url: %v", entity.ErrInvalidInput, err)
	}
	if err := uc.validator.ValidateHTTPSURL(in.FacebookURL); err != nil {
		return fmt.Errorf("%w: facebook url: %v", entity.ErrInvalidInput, err)
	}
	return nil
}

// CreateBrand creates a brand owned by ownerID with empty relation sets.
func (uc *BrandUseCase) CreateBrand(ctx context.Context, ownerID string, in usecasecontract.BrandInput) (*entity.Brand, error) {
	in = normalizeBrandInput(in)
	if err := uc.validateBrandInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	brand := &entity.Brand{
		ID:            uc.uuidgen.NewUUID(),
		OwnerID:       ownerID,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		InstagramURL:  in.InstagramURL,
		FacebookURL:   in.FacebookURL,
		Followers:     []string{},
		FollowerCount: 0,
		Likers:        []string{},
		LikeCount:     0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.brandRepo.CreateBrand(ctx, brand); err != nil {
		uc.logger.Errorf("failed to create brand for owner %s: %v", ownerID, err)
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	uc.invalidateLists(ctx)
	return brand, nil
}

// UpdateBrand edits the profile fields of a brand owned by actorID.
func (uc *BrandUseCase) UpdateBrand(ctx context.Context, brandID, actorID string, in usecasecontract.BrandInput) (*entity.Brand, error) {
	brand, err := uc.brandRepo.GetBrandByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the owner can edit this brand", entity.ErrForbidden)
	}

	in = normalizeBrandInput(in)
	if err := uc.validateBrandInput(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"brand_name":    in.Name,
		"description":   in.Description,
		"category":      in.Category,
		"instagram_url": in.InstagramURL,
		"facebook_url":  in.FacebookURL,
		"updated_at":    time.Now(),
	}
	if err := uc.brandRepo.UpdateBrand(ctx, brandID, updates); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	uc.invalidateBrand(ctx, brandID)

	return uc.brandRepo.GetBrandByID(ctx, brandID)
}

// DeleteBrand removes a brand. Only its owner or an admin may do so.
func (uc *BrandUseCase) DeleteBrand(ctx context.Context, brandID, actorID string, isAdmin bool) error {
	brand, err := uc.brandRepo.GetBrandByID(ctx, brandID)
	if err != nil {
		return err
	}
	if !isAdmin && brand.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner or an admin can delete this brand", entity.ErrForbidden)
	}
	if err := uc.brandRepo.DeleteBrand(ctx, brandID); err != nil {
		return err
	}
	uc.invalidateBrand(ctx, brandID)
	return nil
}

// GetBrand returns a brand, served from the cache when possible.
func (uc *BrandUseCase) GetBrand(ctx context.Context, brandID string) (*entity.Brand, error) {
	if uc.brandCache != nil {
		cached, ok, err := uc.brandCache.GetBrand(ctx, brandID)
		switch {
		case err != nil:
			metrics.BrandCacheRequests.WithLabelValues("detail", "error").Inc()
			uc.logger.Warnf("brand cache read failed for %s: %v", brandID, err)
		case ok:
			metrics.BrandCacheRequests.WithLabelValues("detail", "hit").Inc()
			return cached, nil
		default:
			metrics.BrandCacheRequests.WithLabelValues("detail", "miss").Inc()
		}
	}

	brand, err := uc.brandRepo.GetBrandByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if uc.brandCache != nil {
		if err := uc.brandCache.SetBrand(ctx, brand); err != nil {
			uc.logger.Warnf("brand cache write failed for %s: %v", brandID, err)
		}
	}
	return brand, nil
}

// CachedOwner reports the owner of brandID when the brand is cached. A miss or a
// cache error returns ok=false and never falls through to the store.
func (uc *BrandUseCase) CachedOwner(ctx context.Context, brandID string) (string, bool) {
	if uc.brandCache == nil {
		return "", false
	}
	cached, ok, err := uc.brandCache.GetBrand(ctx, brandID)
	if err != nil {
		metrics.BrandCacheRequests.WithLabelValues("owner", "error").Inc()
		return "", false
	}
	if !ok {
		metrics.BrandCacheRequests.WithLabelValues("owner", "miss").Inc()
		return "", false
	}
	metrics.BrandCacheRequests.WithLabelValues("owner", "hit").Inc()
	return cached.OwnerID, true
}

// ListBrands returns a page of brands, newest first, and the total number of brands.
func (uc *BrandUseCase) ListBrands(ctx context.Context, page, pageSize int) ([]entity.Brand, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)
	key := store.BrandsListKey(page, pageSize)
	if uc.brandCache != nil {
		cached, ok, err := uc.brandCache.GetBrandsPage(ctx, key)
		switch {
		case err != nil:
			metrics.BrandCacheRequests.WithLabelValues("list", "error").Inc()
			uc.logger.Warnf("brand list cache read failed: %v", err)
		case ok:
			metrics.BrandCacheRequests.WithLabelValues("list", "hit").Inc()
			return cached.Brands, cached.Total, nil
		default:
			metrics.BrandCacheRequests.WithLabelValues("list", "miss").Inc()
		}
	}

	brands, total, err := uc.brandRepo.ListBrands(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	out := derefBrands(brands)

	if uc.brandCache != nil {
		if err := uc.brandCache.SetBrandsPage(ctx, key, &contract.CachedBrandsPage{Brands: out, Total: total}); err != nil {
			uc.logger.Warnf("brand list cache write failed: %v", err)
		}
	}
	return out, total, nil
}

// NormalizePage clamps paging parameters: page starts at 1 and pageSize
// defaults to 20 with a ceiling of 100.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ListBrandsByOwner returns every brand created by ownerID.
func (uc *BrandUseCase) ListBrandsByOwner(ctx context.Context, ownerID string) ([]entity.Brand, error) {
	brands, err := uc.brandRepo.ListBrandsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands of owner: %w", err)
	}
	return derefBrands(brands), nil
}

func (uc *BrandUseCase) invalidateBrand(ctx context.Context, brandID string) {
	if uc.brandCache == nil {
		return
	}
	if err := uc.brandCache.InvalidateBrand(ctx, brandID); err != nil && !errors.Is(err, context.Canceled) {
		uc.logger.Warnf("failed to invalidate cached brand %s: %v", brandID, err)
	}
	uc.invalidateLists(ctx)
}

func (uc *BrandUseCase) invalidateLists(ctx context.Context) {
	if uc.brandCache == nil {
		return
	}
	if err := uc.brandCache.InvalidateBrandLists(ctx); err != nil {
		uc.logger.Warnf("failed to invalidate cached brand lists: %v", err)
	}
}

func derefBrands(brands []*entity.Brand) []entity.Brand {
	out := make([]entity.Brand, 0, len(brands))
	for _, b := range brands {
		out = append(out, *b)
	}
	return out
}
