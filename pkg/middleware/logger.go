package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"datenight/internal/logging"
)

// RequestLogger writes one structured line per request. Run it after TraceIDMiddleware.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logging.Ctx(c.Request.Context()).Info()
		if status >= 500 {
			event = logging.Ctx(c.Request.Context()).Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
