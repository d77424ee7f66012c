package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webhook-verify/internal/common/logging"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewZapLogger(logging.LogConfig{Level: logging.DebugLevel, Output: &buf})
	require.NoError(t, err)

	logging.SetGlobalLogger(logger)
	defer logging.SetGlobalLogger(logging.NewDefaultLogger())

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/webhook/github", nil)
	req.Header.Set("User-Agent", "GitHub-Hookshot/abc123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)

	output := buf.String()
	assert.Contains(t, output, "/webhook/github")
	assert.Contains(t, output, "418")
	assert.Contains(t, output, "GitHub-Hookshot")
	assert.Contains(t, output, "WARN", "4xx responses log at warn")
}

func TestLoggingMiddleware_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewZapLogger(logging.LogConfig{Level: logging.DebugLevel, Output: &buf})
	require.NoError(t, err)

	logging.SetGlobalLogger(logger)
	defer logging.SetGlobalLogger(logging.NewDefaultLogger())

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// no explicit WriteHeader
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), "200")
	assert.Contains(t, buf.String(), "INFO")
}
