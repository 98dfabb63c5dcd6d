// file: internal/server/logger.go
// version: 2.0.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/jdfalk/bookstreamer/internal/server/middleware"
)

// OperationLogger tracks the lifecycle of a handler operation
type OperationLogger struct {
	handler   string
	method    string
	path      string
	startTime time.Time
	requestID string
	details   []any
}

// NewOperationLogger creates a new operation logger
func NewOperationLogger(handler, method, path, requestID string) *OperationLogger {
	return &OperationLogger{
		handler:   handler,
		method:    method,
		path:      path,
		startTime: time.Now(),
		requestID: requestID,
	}
}

// AddDetail adds a contextual detail to every following log line
func (ol *OperationLogger) AddDetail(key string, value any) {
	ol.details = append(ol.details, key, value)
}

func (ol *OperationLogger) fields(extra ...any) []any {
	kv := make([]any, 0, 8+len(ol.details)+len(extra))
	kv = append(kv,
		"handler", ol.handler,
		"method", ol.method,
		"path", ol.path,
		"request_id", ol.requestID,
	)
	kv = append(kv, ol.details...)
	return append(kv, extra...)
}

// LogStart logs the start of the operation
func (ol *OperationLogger) LogStart() {
	logging.Info("operation started", ol.fields()...)
}

// LogSuccess logs the successful completion of the operation
func (ol *OperationLogger) LogSuccess(statusCode int) {
	logging.Info("operation succeeded", ol.fields(
		"status", statusCode,
		"duration_ms", time.Since(ol.startTime).Milliseconds(),
	)...)
}

// LogError logs an error that occurred during the operation
func (ol *OperationLogger) LogError(statusCode int, err error) {
	logging.Error("operation failed", ol.fields(
		"status", statusCode,
		"duration_ms", time.Since(ol.startTime).Milliseconds(),
		"error", err,
	)...)
}

// LogWarning logs a warning message
func (ol *OperationLogger) LogWarning(message string) {
	logging.Warn(message, ol.fields()...)
}

// requestLogger writes one line per request once the handler chain is done
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", middleware.GetRequestID(c),
		}
		if c.Writer.Status() >= 500 {
			logging.Warn("request completed with server error", kv...)
			return
		}
		logging.Debug("request completed", kv...)
	}
}
