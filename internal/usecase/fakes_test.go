package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
)

// scriptedStore returns the scripted errors from successive RunInTransaction
// calls and delegates to inner once the script runs out.
type scriptedStore struct {
	mu     sync.Mutex
	script []error
	inner  contract.IMembershipStore
	calls  int
}

func (s *scriptedStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx contract.IBrandTx) error) error {
	s.mu.Lock()
	s.calls++
	var scripted error
	if len(s.script) > 0 {
		scripted = s.script[0]
		s.script = s.script[1:]
	}
	s.mu.Unlock()

	if scripted != nil {
		return scripted
	}
	if s.inner == nil {
		return errors.New("no store behind script")
	}
	return s.inner.RunInTransaction(ctx, fn)
}

func (s *scriptedStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeCache struct {
	mu                sync.Mutex
	brands            map[string]entity.Brand
	pages             map[string]contract.CachedBrandsPage
	invalidated       []string
	listInvalidations int
	failReads         bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		brands: make(map[string]entity.Brand),
		pages:  make(map[string]contract.CachedBrandsPage),
	}
}

func (c *fakeCache) GetBrand(ctx context.Context, brandID string) (*entity.Brand, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return nil, false, errors.New("cache down")
	}
	b, ok := c.brands[brandID]
	if !ok {
		return nil, false, nil
	}
	return &b, true, nil
}

func (c *fakeCache) SetBrand(ctx context.Context, brand *entity.Brand) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brands[brand.ID] = *brand
	return nil
}

func (c *fakeCache) InvalidateBrand(ctx context.Context, brandID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.brands, brandID)
	c.invalidated = append(c.invalidated, brandID)
	return nil
}

func (c *fakeCache) GetBrandsPage(ctx context.Context, key string) (*contract.CachedBrandsPage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[key]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (c *fakeCache) SetBrandsPage(ctx context.Context, key string, page *contract.CachedBrandsPage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = *page
	return nil
}

func (c *fakeCache) InvalidateBrandLists(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]contract.CachedBrandsPage)
	c.listInvalidations++
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []entity.MembershipEvent
	err    error
}

func (p *fakePublisher) PublishMembershipEvent(ctx context.Context, event entity.MembershipEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}
