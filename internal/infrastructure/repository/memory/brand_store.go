package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
)

type brandRecord struct {
	brand   entity.Brand
	version uint64
}

// BrandStore is an in-process brand store with optimistic transactions: every
// document carries a version, a transaction remembers the versions it read, and
// commit fails with entity.ErrConflict if any of them moved.
type BrandStore struct {
	mu     sync.RWMutex
	brands map[string]*brandRecord
}

// NewBrandStore creates an empty BrandStore.
func NewBrandStore() *BrandStore {
	return &BrandStore{brands: make(map[string]*brandRecord)}
}

var (
	_ contract.IBrandRepository = (*BrandStore)(nil)
	_ contract.IMembershipStore = (*BrandStore)(nil)
)

func cloneBrand(b entity.Brand) entity.Brand {
	b.Followers = slices.Clone(b.Followers)
	b.Likers = slices.Clone(b.Likers)
	b.ApplyDefaults()
	return b
}

// RunInTransaction runs fn against a snapshot and commits its staged changes atomically.
func (s *BrandStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx contract.IBrandTx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	tx := &brandTx{
		store:    s,
		versions: make(map[string]uint64),
		views:    make(map[string]*entity.Brand),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *BrandStore) commit(tx *brandTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, version := range tx.versions {
		rec, ok := s.brands[id]
		if !ok || rec.version != version {
			return fmt.Errorf("brand %s changed during transaction: %w", id, entity.ErrConflict)
		}
	}
	for _, w := range tx.writes {
		rec := s.brands[w.brandID]
		rec.brand.Apply(w.change)
		rec.brand.UpdatedAt = time.Now()
		rec.version++
	}
	return nil
}

type stagedChange struct {
	brandID string
	change  entity.MembershipChange
}

type brandTx struct {
	store    *BrandStore
	versions map[string]uint64
	views    map[string]*entity.Brand
	writes   []stagedChange
}

func (tx *brandTx) view(brandID string) (*entity.Brand, error) {
	if b, ok := tx.views[brandID]; ok {
		return b, nil
	}
	tx.store.mu.RLock()
	rec, ok := tx.store.brands[brandID]
	var b entity.Brand
	var version uint64
	if ok {
		b = cloneBrand(rec.brand)
		version = rec.version
	}
	tx.store.mu.RUnlock()
	if !ok {
		return nil, entity.ErrBrandNotFound
	}
	tx.versions[brandID] = version
	tx.views[brandID] = &b
	return &b, nil
}

// GetBrand reads the brand as of this transaction, including its own staged writes.
func (tx *brandTx) GetBrand(ctx context.Context, brandID string) (*entity.Brand, error) {
	b, err := tx.view(brandID)
	if err != nil {
		return nil, err
	}
	out := cloneBrand(*b)
	return &out, nil
}

// ApplyMembershipChange stages the change if the membership precondition still holds.
func (tx *brandTx) ApplyMembershipChange(ctx context.Context, brandID string, change entity.MembershipChange) error {
	b, err := tx.view(brandID)
	if err != nil {
		return err
	}
	if b.HasMember(change.Relation, change.ActorID) == change.Add {
		return fmt.Errorf("membership of %s in %s of brand %s already changed: %w",
			change.ActorID, change.Relation, brandID, entity.ErrConflict)
	}
	b.Apply(change)
	tx.writes = append(tx.writes, stagedChange{brandID: brandID, change: change})
	return nil
}

// CreateBrand stores a new brand with defaults applied.
func (s *BrandStore) CreateBrand(ctx context.Context, brand *entity.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.brands[brand.ID]; exists {
		return fmt.Errorf("brand %s already exists", brand.ID)
	}
	s.brands[brand.ID] = &brandRecord{brand: cloneBrand(*brand), version: 1}
	return nil
}

// GetBrandByID returns a copy of the stored brand.
func (s *BrandStore) GetBrandByID(ctx context.Context, brandID string) (*entity.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.brands[brandID]
	if !ok {
		return nil, entity.ErrBrandNotFound
	}
	b := cloneBrand(rec.brand)
	return &b, nil
}

// UpdateBrand sets profile fields keyed by their persisted names.
func (s *BrandStore) UpdateBrand(ctx context.Context, brandID string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.brands[brandID]
	if !ok {
		return entity.ErrBrandNotFound
	}
	b := rec.brand
	for field, value := range updates {
		var err error
		switch field {
		case "brand_name":
			err = setField(&b.Name, field, value)
		case "description":
			err = setField(&b.Description, field, value)
		case "category":
			err = setField(&b.Category, field, value)
		case "instagram_url":
			err = setField(&b.InstagramURL, field, value)
		case "facebook_url":
			err = setField(&b.FacebookURL, field, value)
		case "updated_at":
			err = setField(&b.UpdatedAt, field, value)
		default:
			err = fmt.Errorf("field %q cannot be updated", field)
		}
		if err != nil {
			return err
		}
	}
	rec.brand = b
	rec.version++
	return nil
}

// DeleteBrand removes a brand.
func (s *BrandStore) DeleteBrand(ctx context.Context, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.brands[brandID]; !ok {
		return entity.ErrBrandNotFound
	}
	delete(s.brands, brandID)
	return nil
}

// sorted returns copies of the brands matching keep, newest first.
func (s *BrandStore) sorted(keep func(*entity.Brand) bool) []*entity.Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Brand, 0, len(s.brands))
	for _, rec := range s.brands {
		if keep != nil && !keep(&rec.brand) {
			continue
		}
		b := cloneBrand(rec.brand)
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ListBrands returns one page of brands, newest first, with the total count.
func (s *BrandStore) ListBrands(ctx context.Context, page, pageSize int) ([]*entity.Brand, int64, error) {
	all := s.sorted(nil)
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []*entity.Brand{}, total, nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], total, nil
}

// ListBrandsByOwner returns every brand owned by ownerID.
func (s *BrandStore) ListBrandsByOwner(ctx context.Context, ownerID string) ([]*entity.Brand, error) {
	return s.sorted(func(b *entity.Brand) bool { return b.OwnerID == ownerID }), nil
}

// DeleteBrandsByOwner removes every brand owned by ownerID.
func (s *BrandStore) DeleteBrandsByOwner(ctx context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, rec := range s.brands {
		if rec.brand.OwnerID == ownerID {
			delete(s.brands, id)
			n++
		}
	}
	return n, nil
}

// AggregateCounts sums like and follower counts over all brands.
func (s *BrandStore) AggregateCounts(ctx context.Context) (brands, likes, followers int64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.brands {
		brands++
		likes += int64(rec.brand.LikeCount)
		followers += int64(rec.brand.FollowerCount)
	}
	return brands, likes, followers, nil
}
