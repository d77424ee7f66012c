package receiver

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webhook-verify/internal/common/logging"
	"webhook-verify/internal/providers"
	"webhook-verify/internal/verify"
)

var githubSecret = []byte("receiver-test-secret")

func quietLogger() logging.Logger {
	logger, err := logging.NewZapLogger(logging.LogConfig{Level: logging.ErrorLevel, Output: io.Discard})
	if err != nil {
		panic(err)
	}
	return logger
}

func newTestRouter(t *testing.T, opts ...ReceiverOption) *mux.Router {
	t.Helper()

	v, err := verify.New(providers.GitHub(), verify.NewKeyring(githubSecret),
		verify.WithLogger(quietLogger()))
	require.NoError(t, err)

	rc := New(append([]ReceiverOption{WithLogger(quietLogger())}, opts...)...)
	rc.Register("github", v)

	router := mux.NewRouter()
	rc.Routes(router)
	return router
}

func githubRequest(body []byte) *http.Request {
	mac := hmac.New(sha256.New, githubSecret)
	mac.Write(body)

	req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestReceiver_HandleWebhook(t *testing.T) {
	router := newTestRouter(t)
	body := []byte(`{"action":"opened"}`)

	t.Run("valid delivery", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, githubRequest(body))

		assert.Equal(t, http.StatusOK, rec.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "verified", response["status"])
		assert.Equal(t, "github", response["provider"])
	})

	t.Run("tampered body", func(t *testing.T) {
		req := githubRequest(body)
		req.Body = io.NopCloser(bytes.NewReader([]byte(`{"action":"closed"}`)))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.NotContains(t, response["error"], "mismatch",
			"the response must not leak the failure reason")
	})

	t.Run("missing signature header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(body))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown provider", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/unknown", bytes.NewReader(body))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		router := newTestRouter(t, WithMaxBodySize(16))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, githubRequest(body))

		assert.NotEqual(t, http.StatusOK, rec.Code)
	})
}

func TestReceiver_Names(t *testing.T) {
	v, err := verify.New(providers.GitHub(), verify.NewKeyring(githubSecret),
		verify.WithLogger(quietLogger()))
	require.NoError(t, err)

	rc := New(WithLogger(quietLogger()))
	assert.Empty(t, rc.Names())

	rc.Register("github", v)
	rc.Register("github-enterprise", v)
	assert.ElementsMatch(t, []string{"github", "github-enterprise"}, rc.Names())
}

func TestMiddleware(t *testing.T) {
	v, err := verify.New(providers.GitHub(), verify.NewKeyring(githubSecret),
		verify.WithLogger(quietLogger()))
	require.NoError(t, err)

	body := []byte(`{"action":"opened"}`)

	var seenBody []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenBody = Body(r)
		result := Result(r)
		require.NotNil(t, result)
		assert.Equal(t, "github", result.Provider)
		w.WriteHeader(http.StatusAccepted)
	})

	router := mux.NewRouter()
	router.Handle("/hooks", handler).Methods("POST")
	router.Use(Middleware(v))

	t.Run("valid delivery reaches the handler", func(t *testing.T) {
		mac := hmac.New(sha256.New, githubSecret)
		mac.Write(body)

		req := httptest.NewRequest(http.MethodPost, "/hooks", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, body, seenBody)
	})

	t.Run("invalid delivery is rejected before the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestResult_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, Result(req))
	assert.Nil(t, Body(req))
}
