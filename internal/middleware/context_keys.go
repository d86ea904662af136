package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// accountNameKey is the key used to store the authenticated account name.
const accountNameKey = contextKey("accountName")

// WithAccountName returns a copy of ctx carrying the authenticated account name.
func WithAccountName(ctx context.Context, accountName string) context.Context {
	return context.WithValue(ctx, accountNameKey, accountName)
}

// GetAccountNameFromContext retrieves the authenticated account name from the Gin context.
// It returns the account name and a boolean indicating if it was found.
func GetAccountNameFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(accountNameKey)); exists {
		accountName, ok := v.(string)
		return accountName, ok && accountName != ""
	}
	// check in the request context as well
	accountName, ok := c.Request.Context().Value(accountNameKey).(string)
	return accountName, ok && accountName != ""
}
