package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/infrastructure/metrics"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// ToggleOptions bounds the conflict retry loop of the toggle service.
type ToggleOptions struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultToggleOptions returns 3 attempts with backoff starting at 20ms, capped at 500ms.
func DefaultToggleOptions() ToggleOptions {
	return ToggleOptions{
		MaxAttempts: 3,
		BaseBackoff: 20 * time.Millisecond,
		MaxBackoff:  500 * time.Millisecond,
	}
}

// MembershipToggleService flips one actor's membership in one relation of one brand
// and moves the paired count in the same transaction.
type MembershipToggleService struct {
	store     contract.IMembershipStore
	logger    usecasecontract.IAppLogger
	opts      ToggleOptions
	cache     contract.IBrandCache
	publisher contract.IEventPublisher
}

// NewMembershipToggleService creates a toggle service over the given store.
func NewMembershipToggleService(store contract.IMembershipStore, logger usecasecontract.IAppLogger, opts ToggleOptions) *MembershipToggleService {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultToggleOptions().MaxAttempts
	}
	if opts.BaseBackoff < 0 {
		opts.BaseBackoff = 0
	}
	if opts.MaxBackoff < opts.BaseBackoff {
		opts.MaxBackoff = opts.BaseBackoff
	}
	return &MembershipToggleService{
		store:  store,
		logger: logger,
		opts:   opts,
	}
}

// check if MembershipToggleService implements the IMembershipToggleUseCase
var _ usecasecontract.IMembershipToggleUseCase = (*MembershipToggleService)(nil)

// SetBrandCache injects the cache invalidated after each committed toggle.
func (s *MembershipToggleService) SetBrandCache(cache contract.IBrandCache) {
	s.cache = cache
}

// SetEventPublisher injects the publisher notified after each committed toggle.
func (s *MembershipToggleService) SetEventPublisher(p contract.IEventPublisher) {
	s.publisher = p
}

// Toggle adds actorID to the relation set when absent and removes it when present,
// returning the membership after commit.
func (s *MembershipToggleService) Toggle(ctx context.Context, brandID, actorID string, relation entity.Relation, ownerID string) (bool, error) {
	if !relation.Valid() {
		return false, fmt.Errorf("%w: %q", entity.ErrInvalidRelation, relation)
	}
	if brandID == "" || actorID == "" {
		return false, fmt.Errorf("%w: brand and actor ids are required", entity.ErrInvalidInput)
	}
	if ownerID != "" && actorID == ownerID {
		metrics.ObserveToggle(relation, entity.ErrSelfRelation, 0)
		return false, entity.ErrSelfRelation
	}

	start := time.Now()
	isMember, err := s.toggleWithRetry(ctx, brandID, actorID, relation)
	metrics.ObserveToggle(relation, err, time.Since(start))
	if err != nil {
		return false, err
	}

	s.afterCommit(ctx, brandID, actorID, relation, isMember)
	return isMember, nil
}

func (s *MembershipToggleService) toggleWithRetry(ctx context.Context, brandID, actorID string, relation entity.Relation) (bool, error) {
	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		isMember, err := s.toggleOnce(ctx, brandID, actorID, relation)
		if err == nil {
			return isMember, nil
		}
		if !errors.Is(err, entity.ErrConflict) {
			return false, err
		}
		lastErr = err
		if attempt == s.opts.MaxAttempts {
			break
		}

		metrics.MembershipToggleRetries.WithLabelValues(string(relation)).Inc()
		wait := s.backoff(attempt)
		s.logger.Debugf("toggle %s on brand %s by %s conflicted (attempt %d/%d), retrying in %s",
			relation, brandID, actorID, attempt, s.opts.MaxAttempts, wait)
		if err := sleepContext(ctx, wait); err != nil {
			return false, err
		}
	}
	s.logger.Warnf("toggle %s on brand %s by %s gave up after %d attempts", relation, brandID, actorID, s.opts.MaxAttempts)
	return false, fmt.Errorf("toggle %s on brand %s: retries exhausted: %w", relation, brandID, lastErr)
}

// toggleOnce runs one read-modify-write transaction.
func (s *MembershipToggleService) toggleOnce(ctx context.Context, brandID, actorID string, relation entity.Relation) (bool, error) {
	var isMember bool
	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx contract.IBrandTx) error {
		brand, err := tx.GetBrand(ctx, brandID)
		if err != nil {
			return err
		}
		if brand.OwnerID == actorID {
			return entity.ErrSelfRelation
		}

		change := entity.MembershipChange{
			Relation: relation,
			ActorID:  actorID,
			Add:      !brand.HasMember(relation, actorID),
		}
		if err := tx.ApplyMembershipChange(ctx, brandID, change); err != nil {
			return err
		}
		isMember = change.Add
		return nil
	})
	if err != nil {
		return false, err
	}
	return isMember, nil
}

// backoff doubles the base delay per attempt, caps it, and keeps between half and
// all of it so that colliding actors spread out.
func (s *MembershipToggleService) backoff(attempt int) time.Duration {
	d := s.opts.BaseBackoff << (attempt - 1)
	if d > s.opts.MaxBackoff || d <= 0 {
		d = s.opts.MaxBackoff
	}
	half := d / 2
	if half <= 0 {
		return d
	}
	return half + rand.N(half)
}

// afterCommit runs the side channels of a committed toggle. Their failures are
// logged and never change the toggle result.
func (s *MembershipToggleService) afterCommit(ctx context.Context, brandID, actorID string, relation entity.Relation, isMember bool) {
	ctx = context.WithoutCancel(ctx)
	if s.cache != nil {
		if err := s.cache.InvalidateBrand(ctx, brandID); err != nil {
			s.logger.Warnf("failed to invalidate cached brand %s: %v", brandID, err)
		}
		if err := s.cache.InvalidateBrandLists(ctx); err != nil {
			s.logger.Warnf("failed to invalidate cached brand lists: %v", err)
		}
	}
	if s.publisher != nil {
		event := entity.MembershipEvent{
			BrandID:   brandID,
			ActorID:   actorID,
			Relation:  relation,
			IsMember:  isMember,
			Timestamp: time.Now().UTC(),
		}
		if err := s.publisher.PublishMembershipEvent(ctx, event); err != nil {
			metrics.EventPublishFailures.Inc()
			s.logger.Warnf("failed to publish %s for brand %s: %v", event.Subject(), brandID, err)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
