package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

const errInternalServer = "internal server error"

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	hasher        contract.IHasher
	jwtService    JWTService
	logger        usecasecontract.IAppLogger
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		logger:        logger,
		validator:     validator,
		uuidGenerator: uuidGenerator,
	}
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register handles user registration. New accounts are members and not banned.
func (uc *UserUsecase) Register(ctx context.Context, email, password, displayName string) (*entity.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)

	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format: %v", entity.ErrInvalidInput, err)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, fmt.Errorf("%w: weak password: %v", entity.ErrInvalidInput, err)
	}
	if displayName == "" {
		displayName = strings.Split(email, "@")[0]
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrUserNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUserExists, email)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hashedPassword,
		Role:         entity.DefaultRole(),
		Banned:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrUserExists) {
			return nil, err
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to register user")
	}

	return user, nil
}

// Login handles user login and token generation.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, "", "", entity.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", "", errors.New(errInternalServer)
	}

	// OAuth-only accounts have no password hash.
	if user.PasswordHash == "" {
		return nil, "", "", entity.ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", entity.ErrInvalidCredentials
	}
	if user.Banned {
		return nil, "", "", entity.ErrUserBanned
	}

	accessToken, refreshToken, err := uc.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Authenticate resolves an access token to a user that is allowed to act.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token: %v", entity.ErrInvalidCredentials, err)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, err
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if user.Banned {
		return nil, entity.ErrUserBanned
	}

	return user, nil
}

// RefreshToken exchanges a refresh token for a new token pair. The role is
// read from the stored user so promotions take effect on the next refresh.
func (uc *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid refresh token: %v", entity.ErrInvalidCredentials, err)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", "", entity.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user during refresh: %v", err)
		return "", "", errors.New(errInternalServer)
	}
	if user.Banned {
		return "", "", entity.ErrUserBanned
	}

	return uc.issueTokens(user)
}

// LoginWithOAuth signs in a user verified by an external provider, creating
// the account on first sign-in and merging profile fields afterwards.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, email, displayName string, photoURL *string) (string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", "", fmt.Errorf("%w: provider returned no email", entity.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrUserNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return "", "", errors.New(errInternalServer)
	}

	if user == nil {
		now := time.Now()
		newUser := &entity.User{
			ID:          uc.uuidGenerator.NewUUID(),
			Email:       email,
			DisplayName: displayName,
			PhotoURL:    photoURL,
			Role:        entity.DefaultRole(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.userRepo.CreateUser(ctx, newUser); err != nil {
			uc.logger.Errorf("failed to create user from OAuth: %v", err)
			return "", "", fmt.Errorf("failed to register user")
		}
		user = newUser
	} else {
		updates := map[string]interface{}{"updated_at": time.Now()}
		if displayName != "" {
			updates["display_name"] = displayName
		}
		if photoURL != nil {
			updates["photo_url"] = photoURL
		}
		updated, err := uc.userRepo.UpdateUser(ctx, user.ID, updates)
		if err != nil {
			uc.logger.Warnf("failed to merge OAuth profile for user %s: %v", user.ID, err)
		} else {
			user = updated
		}
	}

	if user.Banned {
		return "", "", entity.ErrUserBanned
	}

	return uc.issueTokens(user)
}

// GetUserByID retrieves a user by their ID.
func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, err
		}
		uc.logger.Errorf("failed to get user by ID %s: %v", userID, err)
		return nil, errors.New(errInternalServer)
	}
	return user, nil
}

func (uc *UserUsecase) issueTokens(user *entity.User) (string, string, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", "", errors.New("failed to generate token")
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return "", "", errors.New("failed to generate token")
	}
	return accessToken, refreshToken, nil
}
