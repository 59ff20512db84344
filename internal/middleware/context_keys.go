package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// companiesKey stores the companies an authenticated token is scoped to.
const companiesKey = contextKey("companies")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// getCompaniesFromContext returns the company scope of the token, nil when unrestricted.
func getCompaniesFromContext(c *gin.Context) []string {
	companies, _ := c.Request.Context().Value(companiesKey).([]string)
	return companies
}
