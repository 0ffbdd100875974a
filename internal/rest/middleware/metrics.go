package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/picshare/internal/metrics"
)

// Metrics records request latency and writes one access log line per request
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"route":   route,
			"status":  status,
			"latency": elapsed.String(),
		}).Debug("request handled")
	}
}
