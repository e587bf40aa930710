package middleware

import (
	"time"

	"opftube/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		if status >= 500 {
			log.Error("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
			return
		}
		log.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
	}
}
