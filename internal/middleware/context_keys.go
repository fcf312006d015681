package middleware

import "github.com/gin-gonic/gin"

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey = contextKey("userID")
	// firmIDKey is the key used to store the authenticated user's firm ID.
	firmIDKey = contextKey("firmID")
	// isAdminKey is the key used to store the admin flag from the token.
	isAdminKey = contextKey("isAdmin")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if ctxVal := c.Request.Context().Value(userIDKey); ctxVal != nil {
			if userID, ok := ctxVal.(string); ok {
				return userID, true
			}
		}
		return "", false
	}

	userID, ok := val.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetFirmIDFromContext retrieves the authenticated user's firm ID from the Gin
// context. Every invoice operation is scoped to this firm.
func GetFirmIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(firmIDKey))
	if !exists {
		if ctxVal := c.Request.Context().Value(firmIDKey); ctxVal != nil {
			if firmID, ok := ctxVal.(string); ok {
				return firmID, true
			}
		}
		return "", false
	}

	firmID, ok := val.(string)
	if !ok {
		return "", false
	}
	return firmID, true
}

// IsAdminFromContext reports whether the authenticated user carries the admin
// flag. Absence means false.
func IsAdminFromContext(c *gin.Context) bool {
	if val, exists := c.Get(string(isAdminKey)); exists {
		if isAdmin, ok := val.(bool); ok {
			return isAdmin
		}
	}
	if ctxVal := c.Request.Context().Value(isAdminKey); ctxVal != nil {
		if isAdmin, ok := ctxVal.(bool); ok {
			return isAdmin
		}
	}
	return false
}
