package entity

import "errors"

// Membership toggle errors.
var (
	// ErrSelfRelation is returned when an actor tries to follow or like their own brand.
	ErrSelfRelation = errors.New("cannot follow or like your own brand")
	// ErrBrandNotFound is returned when the brand does not exist at transaction time.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrConflict signals a concurrent conflicting write. Retried by the toggle service.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrStoreUnavailable wraps transport and backend failures of the document store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidRelation is returned for a relation other than follower or liker.
	ErrInvalidRelation = errors.New("invalid relation")
)

// Account and moderation errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBanned         = errors.New("user is banned")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)
