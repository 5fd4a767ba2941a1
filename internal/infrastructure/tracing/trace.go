package tracing

import (
	"context"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/shared/id"
)

// HeaderTraceID carries the trace ID on requests and responses
const HeaderTraceID = "X-Trace-ID"

// maxTraceIDLen bounds caller supplied IDs before they reach the logs
const maxTraceIDLen = 128

// TraceID represents a unique trace identifier
type TraceID string

// NewTraceID generates a trace ID
func NewTraceID() TraceID {
	return TraceID(id.NewTraceID())
}

// Context keys for trace propagation
type contextKey string

const traceIDKey contextKey = "trace_id"

// WithTraceID returns a context carrying traceID
func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) TraceID {
	if traceID, ok := ctx.Value(traceIDKey).(TraceID); ok {
		return traceID
	}
	return ""
}

// Field returns the trace ID of ctx as a log field
func Field(ctx context.Context) zap.Field {
	return zap.String("trace_id", string(GetTraceID(ctx)))
}
