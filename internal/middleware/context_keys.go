package middleware

import "github.com/gin-gonic/gin"

// sellerIDKey is the key used to store the authenticated seller's ID in the
// request context. tenantIDKey holds the tenant the seller belongs to.
const (
	sellerIDKey = contextKey("sellerID")
	tenantIDKey = contextKey("tenantID")
)

// GetSellerIDFromContext retrieves the authenticated seller ID from the Gin context.
// It returns the seller ID and a boolean indicating if it was found.
func GetSellerIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(sellerIDKey)
	if val == nil {
		return "", false
	}

	sellerID, ok := val.(string)
	if !ok {
		// This should not happen if the auth middleware sets it correctly.
		return "", false
	}

	return sellerID, true
}

// GetTenantIDFromContext retrieves the tenant ID of the authenticated seller
// from the Gin context.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(tenantIDKey)
	if val == nil {
		return "", false
	}

	tenantID, ok := val.(string)
	if !ok {
		return "", false
	}

	return tenantID, true
}
