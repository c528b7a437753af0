package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/inventory/pkg/metrics"
)

// Metrics HTTP请求监控中间件
// 设计说明:
// 1. 记录请求总数、耗时分布、进行中请求数
// 2. path标签使用路由模板(c.FullPath())而非原始URL,
//    避免/api/v1/products/123这类路径把标签基数打爆
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
