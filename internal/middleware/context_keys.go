package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the user ID placed in the request context by
// AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
