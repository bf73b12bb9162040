package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/orgspace/orgspace-api/internal/constants"
	"github.com/orgspace/orgspace-api/internal/database"
	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "User is not logged in")
			c.Abort()
			return
		}

		id, ok := asUint64(userID)
		if !ok {
			apierrors.Unauthorized(c, "User is not logged in")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, id).Error; err != nil {
			// The session outlived the account
			apierrors.Unauthorized(c, "User is not logged in")
			c.Abort()
			return
		}

		// Store user ID and the loaded user for easy access in handlers
		c.Set(constants.ContextKeyUserID, id)
		c.Set(constants.ContextKeyUser, &user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return asUint64(userID)
}

// CurrentUser retrieves the authenticated user loaded by RequireAuth. It
// returns nil for anonymous requests so handlers can pass it straight to the
// authorization gate.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func asUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
