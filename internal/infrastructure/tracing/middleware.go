package tracing

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
)

// HTTPMiddleware creates Gin middleware that assigns trace IDs and logs requests
func HTTPMiddleware(logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNop()
	}

	return func(c *gin.Context) {
		traceID := TraceID(c.GetHeader(HeaderTraceID))
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = NewTraceID()
		}

		ctx := WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, string(traceID))

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("trace_id", string(traceID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Error(c.Errors.Last()))
		}

		if status >= 500 {
			logger.Error("Request failed", fields...)
		} else {
			logger.Debug("Request completed", fields...)
		}
	}
}
