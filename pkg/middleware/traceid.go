package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"datenight/internal/logging"
)

// TraceIDMiddleware tags each request with a trace id, reusing X-Trace-ID when the
// caller sent one, and puts it on the request context for logging.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set("X-Trace-ID", traceID)

		ctx := logging.ContextWithRequestID(c.Request.Context(), traceID)
		ctx = logging.ContextWithCorrelationID(ctx, traceID[:8])
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
