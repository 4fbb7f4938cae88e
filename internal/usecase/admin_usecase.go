package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// AdminUseCase implements moderation operations reserved to admins.
type AdminUseCase struct {
	userRepo   contract.IUserRepository
	brandRepo  contract.IBrandRepository
	logger     usecasecontract.IAppLogger
	brandCache contract.IBrandCache
}

func NewAdminUseCase(userRepo contract.IUserRepository, brandRepo contract.IBrandRepository, logger usecasecontract.IAppLogger) *AdminUseCase {
	return &AdminUseCase{
		userRepo:  userRepo,
		brandRepo: brandRepo,
		logger:    logger,
	}
}

var _ usecasecontract.IAdminUseCase = (*AdminUseCase)(nil)

func (uc *AdminUseCase) SetBrandCache(cache contract.IBrandCache) {
	uc.brandCache = cache
}

// ListUsers returns every registered user.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := uc.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u)
	}
	return out, nil
}

// ToggleBan flips the banned flag of a user.
func (uc *AdminUseCase) ToggleBan(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := uc.userRepo.UpdateUser(ctx, userID, map[string]interface{}{
		"banned":     !user.Banned,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update ban status: %w", err)
	}
	uc.logger.Infof("user %s banned=%t", userID, updated.Banned)
	return updated, nil
}

// MakeAdmin grants the admin role to a user.
func (uc *AdminUseCase) MakeAdmin(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}
	updated, err := uc.userRepo.UpdateUser(ctx, userID, map[string]interface{}{
		"role":       entity.UserRoleAdmin,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	uc.logger.Infof("user %s promoted to admin", userID)
	return updated, nil
}

// DeleteUser removes a user together with every brand they own.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}

	owned, err := uc.brandRepo.ListBrandsByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list brands of user: %w", err)
	}
	deleted, err := uc.brandRepo.DeleteBrandsByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete brands of user: %w", err)
	}
	if err := uc.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	uc.logger.Infof("deleted user %s and %d brands", userID, deleted)

	if uc.brandCache != nil {
		for _, b := range owned {
			if err := uc.brandCache.InvalidateBrand(ctx, b.ID); err != nil {
				uc.logger.Warnf("failed to invalidate cached brand %s: %v", b.ID, err)
			}
		}
		if err := uc.brandCache.InvalidateBrandLists(ctx); err != nil {
			uc.logger.Warnf("failed to invalidate cached brand lists: %v", err)
		}
	}
	return nil
}

// Stats aggregates platform totals for the admin dashboard.
func (uc *AdminUseCase) Stats(ctx context.Context) (*entity.BrandStats, error) {
	users, err := uc.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	brands, likes, followers, err := uc.brandRepo.AggregateCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate brand counts: %w", err)
	}
	return &entity.BrandStats{
		TotalUsers:     users,
		TotalBrands:    brands,
		TotalLikes:     likes,
		TotalFollowers: followers,
	}, nil
}
