package contract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// IBrandTx is the view of a brand document inside a store transaction.
type IBrandTx interface {
	// GetBrand reads the brand with defaults applied. Returns entity.ErrBrandNotFound.
	GetBrand(ctx context.Context, brandID string) (*entity.Brand, error)
	// ApplyMembershipChange stages the set mutation and the paired count increment
	// as one conditional update. Returns entity.ErrConflict when the condition no
	// longer holds.
	ApplyMembershipChange(ctx context.Context, brandID string, change entity.MembershipChange) error
}

// IMembershipStore is the transactional document store consumed by the toggle service.
type IMembershipStore interface {
	// RunInTransaction executes fn and commits its staged changes atomically.
	// Conflicting concurrent writes surface as entity.ErrConflict and backend
	// failures as entity.ErrStoreUnavailable. Errors returned by fn abort the
	// transaction and are returned as is.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx IBrandTx) error) error
}
