package middleware

import (
	"Keystone/internal/pkg/logger"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware 沿用上游传入的 UUID 作为 trace_id，格式不合法时重新生成
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.NewString()
		if incoming, err := uuid.Parse(c.GetHeader(traceHeader)); err == nil {
			traceID = incoming.String()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.TraceIDKey, traceID))
		c.Writer.Header().Set(traceHeader, traceID)
		c.Next()
	}
}
