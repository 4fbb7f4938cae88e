package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
)

const brandListPattern = "brands:list:*"

type BrandCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

func NewBrandCacheStore(rdb *redis.Client) *BrandCacheStore {
	return &BrandCacheStore{
		rdb:       rdb,
		detailTTL: 30 * time.Minute,
		listTTL:   5 * time.Minute,
	}
}

var _ contract.IBrandCache = (*BrandCacheStore)(nil)

func brandDetailKey(brandID string) string { return fmt.Sprintf("brand:id:%s", brandID) }

// BrandsListKey builds the cache key of one list page.
func BrandsListKey(page, pageSize int) string {
	return fmt.Sprintf("brands:list:p=%d:s=%d", page, pageSize)
}

func (c *BrandCacheStore) GetBrand(ctx context.Context, brandID string) (*entity.Brand, bool, error) {
	b, err := c.rdb.Get(ctx, brandDetailKey(brandID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var brand entity.Brand
	if err := json.Unmarshal(b, &brand); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next set
		return nil, false, nil
	}
	brand.ApplyDefaults()
	return &brand, true, nil
}

func (c *BrandCacheStore) SetBrand(ctx context.Context, brand *entity.Brand) error {
	data, err := json.Marshal(brand)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, brandDetailKey(brand.ID), data, c.detailTTL).Err()
}

func (c *BrandCacheStore) InvalidateBrand(ctx context.Context, brandID string) error {
	return c.rdb.Del(ctx, brandDetailKey(brandID)).Err()
}

func (c *BrandCacheStore) GetBrandsPage(ctx context.Context, key string) (*contract.CachedBrandsPage, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var page contract.CachedBrandsPage
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, false, nil
	}
	return &page, true, nil
}

func (c *BrandCacheStore) SetBrandsPage(ctx context.Context, key string, page *contract.CachedBrandsPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.listTTL).Err()
}

func (c *BrandCacheStore) InvalidateBrandLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, brandListPattern, 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
