package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey     = "userID"
	RoleKey       = "role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves an access token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

var _ Authenticator = (usecasecontract.IUserUseCase)(nil)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

// AuthMiddleWare requires a valid bearer token of a user that is not banned and
// stores the user id and role in the gin context.
func AuthMiddleWare(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case errors.Is(err, entity.ErrUserBanned):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "your account has been banned"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(RoleKey, user.Role)
		c.Next()
	}
}

// OptionalAuth sets the user id and role when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(UserIDKey, user.ID)
				c.Set(RoleKey, user.Role)
			}
		}
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleWare.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != entity.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetUserID extracts user ID from Gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// GetRole extracts the user role from Gin context.
func GetRole(c *gin.Context) entity.UserRole {
	if role, exists := c.Get(RoleKey); exists {
		if r, ok := role.(entity.UserRole); ok {
			return r
		}
	}
	return ""
}
