package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context values set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// userIDKey is the key under which the authenticated user's ID is stored.
	userIDKey = contextKey("userID")
	// loggerCtxKey is the key under which the request-scoped logger is stored.
	loggerCtxKey = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(userIDKey)
		if ctxVal != nil {
			if userID, ok := ctxVal.(string); ok {
				return userID, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// ContextWithUserID returns a context carrying the acting user's ID. Intended
// for tests and non-HTTP callers of the services.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
