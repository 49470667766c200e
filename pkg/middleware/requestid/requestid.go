package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerKey  = "X-Request-ID"
	contextKey = "request_id"

	// Inbound ids longer than this are replaced rather than truncated so a
	// hostile client cannot stuff log pipelines with arbitrary payloads.
	maxInboundLen = 64
)

// Middleware tags every request with an id, honoring a well-formed inbound
// X-Request-ID so ids survive proxy hops, and echoes it on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := sanitize(c.GetHeader(headerKey))
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(contextKey, reqID)
		c.Writer.Header().Set(headerKey, reqID)

		c.Next()
	}
}

// Value returns the request id stored in the gin context, or "".
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// sanitize accepts inbound ids made of unreserved URL characters only;
// anything else is discarded and a fresh id generated.
func sanitize(id string) string {
	if id == "" || len(id) > maxInboundLen {
		return ""
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_.", r):
		default:
			return ""
		}
	}
	return id
}
