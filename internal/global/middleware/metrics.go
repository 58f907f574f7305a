package middleware

import (
	"strconv"
	"time"

	"mergington-activities/internal/global/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 以路由模板作为标签，避免活动名造成高基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
