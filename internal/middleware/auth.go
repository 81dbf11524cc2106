package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/constants"
	"github.com/shirokane/esports-hub-api/internal/database"
	apierrors "github.com/shirokane/esports-hub-api/internal/errors"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/services"
)

// RequireAuth checks if the user is authenticated via session. Any
// malformed or absent session value fails closed to 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)

		if raw == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		str, ok := raw.(string)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(str)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}

	switch v := raw.(type) {
	case uuid.UUID:
		return v, true
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	default:
		return uuid.Nil, false
	}
}

// GetPrincipal resolves the full principal, including the admin flag,
// from the session user. Returns false when the user no longer exists.
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	userID, exists := GetUserID(c)
	if !exists {
		return services.Principal{}, false
	}

	var user models.User
	if err := database.GetDB().First(&user, "id = ?", userID).Error; err != nil {
		return services.Principal{}, false
	}

	return services.Principal{UserID: user.ID, IsAdmin: user.IsAdmin}, true
}

// RequireAdmin allows only platform admins through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !principal.IsAdmin {
			apierrors.Forbidden(c, "Administrator privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}
