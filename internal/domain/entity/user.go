package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a registered student or admin.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	PhotoURL     *string   `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	Role         UserRole  `bson:"role" json:"role"`
	Banned       bool      `bson:"banned" json:"banned"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

func DefaultRole() UserRole {
	return UserRoleMember
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Claims carries the identity extracted from an access or refresh token.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
