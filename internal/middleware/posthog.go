package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/token_ledger/internal/utils"
)

// errorKindKey holds the ledger error kind of a rejected request.
const errorKindKey = "errorKind"

// SetErrorKind records why a request was rejected so the tracker can report it.
func SetErrorKind(c *gin.Context, kind string) {
	if kind != "" {
		c.Set(errorKindKey, kind)
	}
}

// PosthogMiddleware reports every ledger write request to PostHog as a
// "api_ledger_<action>" event, attributed to the calling account. Rejected
// requests are reported too, with their status and error kind.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() || c.Request.Method != http.MethodPost {
			return
		}

		// Only routes shaped /api/v1/ledger/<action>
		route := c.FullPath()
		idx := strings.Index(route, "/ledger/")
		if idx < 0 {
			return
		}
		action := route[idx+len("/ledger/"):]
		if action == "" || strings.Contains(action, "/") {
			return
		}

		accountName, ok := GetAccountNameFromContext(c)
		if !ok {
			return
		}

		status := c.Writer.Status()
		props := map[string]any{
			"action":      action,
			"status_code": status,
			"applied":     status < http.StatusBadRequest,
		}
		if kind := c.GetString(errorKindKey); kind != "" {
			props["error_kind"] = kind
		}
		posthogClient.Enqueue(accountName, "api_ledger_"+action, props)
	}
}
