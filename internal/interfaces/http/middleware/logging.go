package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/shared/constants"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// slowRequest is the latency above which a successful request logs at warn.
const slowRequest = 2 * time.Second

// CustomLogger writes one line per request. Health probes are not logged.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		args := []any{
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", q)
		}
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if userID, exists := c.Get(constants.ContextKeyUserID); exists {
			args = append(args, "user_id", userID, "role", c.GetString(constants.ContextKeyUserRole))
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		case latency > slowRequest:
			log.Warnw("slow request", args...)
		default:
			log.Debugw("request completed", args...)
		}
	}
}
