/*
Package tracing tags admin API requests with a trace ID.

# Overview

Every request gets a trace ID, either the one the caller sent in the
X-Trace-ID header or a fresh prefixed ULID. The ID is echoed in the response
header, stored in the request context and attached to the request log line,
so a failed launch reported by a dashboard can be found in the launcher log.

# Usage

	router.Use(tracing.HTTPMiddleware(logger))

	func (h *Handlers) RunApp(c *gin.Context) {
		ctx := c.Request.Context()
		h.logger.Error("Launch failed", tracing.Field(ctx), zap.Error(err))
	}
*/
package tracing
