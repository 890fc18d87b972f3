package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payperplay/mcstatus/pkg/logger"
)

// RequestLogger logs every request once it completes. Successful requests to
// quietPaths (probes, scrapes) are logged at DEBUG.
func RequestLogger(quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields["query"] = query
		}
		if route := c.FullPath(); route != "" {
			fields["route"] = route
		}
		if id := GetRequestID(c); id != "" {
			fields["request_id"] = id
		}

		switch _, isQuiet := quiet[path]; {
		case status >= 500:
			logger.Error("HTTP request", nil, fields)
		case status >= 400:
			logger.Warn("HTTP request", fields)
		case isQuiet:
			logger.Debug("HTTP request", fields)
		default:
			logger.Info("HTTP request", fields)
		}
	}
}
