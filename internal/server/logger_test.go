// file: internal/server/logger_test.go
// version: 2.0.0
// guid: 2e3f4a5b-6c7d-8e9f-0a1b-2c3d4e5f6a7b

package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/jdfalk/bookstreamer/internal/server/middleware"
	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := logging.Logger()
	buf := &bytes.Buffer{}
	logging.SetLoggerForTest(zerolog.New(buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { logging.SetLoggerForTest(prev) })
	return buf
}

func TestNewOperationLogger(t *testing.T) {
	logger := NewOperationLogger("autofill", "POST", "/api/autofill", "req-123")

	if logger.handler != "autofill" {
		t.Errorf("expected handler 'autofill', got %q", logger.handler)
	}
	if logger.method != "POST" {
		t.Errorf("expected method 'POST', got %q", logger.method)
	}
	if logger.path != "/api/autofill" {
		t.Errorf("expected path '/api/autofill', got %q", logger.path)
	}
	if logger.requestID != "req-123" {
		t.Errorf("expected requestID 'req-123', got %q", logger.requestID)
	}
}

func TestOperationLogger_AddDetail(t *testing.T) {
	buf := captureLogs(t)

	logger := NewOperationLogger("autofill", "POST", "/api/autofill", "req-123")
	logger.AddDetail("title", "Dune")
	logger.AddDetail("author", "Frank Herbert")
	logger.LogStart()

	out := buf.String()
	for _, want := range []string{`"title":"Dune"`, `"author":"Frank Herbert"`, `"request_id":"req-123"`, "operation started"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log output, got %q", want, out)
		}
	}
}

func TestOperationLogger_LogSuccessAndError(t *testing.T) {
	buf := captureLogs(t)

	logger := NewOperationLogger("autofill", "POST", "/api/autofill", "req-9")
	logger.LogSuccess(http.StatusOK)
	logger.LogError(http.StatusInternalServerError, errors.New("cover lookup panicked"))
	logger.LogWarning("no cover found")

	out := buf.String()
	if !strings.Contains(out, `"status":200`) || !strings.Contains(out, "operation succeeded") {
		t.Errorf("expected success line, got %q", out)
	}
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "cover lookup panicked") {
		t.Errorf("expected error line, got %q", out)
	}
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "no cover found") {
		t.Errorf("expected warning line, got %q", out)
	}
}

func TestRequestLogger(t *testing.T) {
	buf := captureLogs(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequestID(), requestLogger())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-1")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"request_id":"trace-1"`) || !strings.Contains(lines[0], `"level":"debug"`) {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], `"status":502`) || !strings.Contains(lines[1], `"level":"warn"`) {
		t.Errorf("unexpected second line %q", lines[1])
	}
}
