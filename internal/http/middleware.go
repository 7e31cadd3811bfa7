package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"

	"farmflow/internal/log"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger carrying the request id and
// logs the outcome once the handler chain returns. A well-formed incoming
// X-Request-ID is reused.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		reqLogger := logger.With(log.NewFields().WithRequestID(requestID).ToSlice()...)
		ctx := log.NewContext(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.LogHTTPEnd(ctx, c.Request, c.Writer.Status(), time.Since(start).Milliseconds(), c.ClientIP())
	}
}

// RateLimit rejects clients over the per-IP rate with 429.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ctx := c.Request.Context()
		logger := log.FromContext(ctx).WithComponent(log.ComponentRateLimit)

		lc, err := l.Get(ctx, ip)
		if err != nil {
			logger.LogError(ctx, "Failed to get rate limit context", err, log.OpRead, log.NewFields().WithClientIP(ip))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		if lc.Reached {
			logger.WarnContext(ctx, "Rate limit exceeded", log.FieldClientIP, ip, "limit", lc.Limit, "remaining_requests", lc.Remaining)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
