// Package receiver integrates the verification engine with net/http. It
// extracts the raw body and headers from inbound requests, runs the
// configured verifier, and either rejects with 401 or hands the
// authenticated body to the next handler. The engine itself never touches
// framework types; this package is the boundary.
package receiver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"webhook-verify/internal/common/logging"
	"webhook-verify/internal/verify"
)

// DefaultMaxBodySize caps webhook bodies at 64 KiB unless overridden
const DefaultMaxBodySize = 64 * 1024

type contextKey int

const resultKey contextKey = iota

// Receiver maps provider names to verifiers and serves webhook endpoints
type Receiver struct {
	verifiers   map[string]*verify.Verifier
	maxBodySize int64
	logger      logging.Logger
}

// ReceiverOption customizes a Receiver
type ReceiverOption func(*Receiver)

// WithMaxBodySize overrides the request body cap
func WithMaxBodySize(limit int64) ReceiverOption {
	return func(rc *Receiver) { rc.maxBodySize = limit }
}

// WithLogger sets the receiver's logger
func WithLogger(logger logging.Logger) ReceiverOption {
	return func(rc *Receiver) { rc.logger = logger }
}

// New creates an empty receiver
func New(opts ...ReceiverOption) *Receiver {
	rc := &Receiver{
		verifiers:   make(map[string]*verify.Verifier),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(rc)
	}
	if rc.logger == nil {
		rc.logger = logging.NewDefaultLogger()
	}
	return rc
}

// Register adds a verifier under a route name. Registration happens at
// startup, before the router serves traffic; the map is read-only afterwards.
func (rc *Receiver) Register(name string, verifier *verify.Verifier) {
	rc.verifiers[name] = verifier
}

// Names returns the registered provider route names
func (rc *Receiver) Names() []string {
	names := make([]string, 0, len(rc.verifiers))
	for name := range rc.verifiers {
		names = append(names, name)
	}
	return names
}

// Routes mounts the webhook endpoint on the router
func (rc *Receiver) Routes(router *mux.Router) {
	router.HandleFunc("/webhook/{provider}", rc.handleWebhook).Methods("POST", "PUT", "PATCH")
}

func (rc *Receiver) handleWebhook(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]

	verifier, ok := rc.verifiers[name]
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown webhook provider")
		return
	}

	result, err := verifier.Verify(verify.FromHTTPHeader(r.Header), http.MaxBytesReader(w, r.Body, rc.maxBodySize))
	if err != nil {
		// The reason stays in the logs; the response is a plain rejection
		rc.logger.Warn("Rejected webhook delivery",
			logging.String("provider", name),
			logging.String("reason", string(verify.ReasonOf(err))),
			logging.String("remote_addr", r.RemoteAddr),
		)
		writeJSONError(w, http.StatusUnauthorized, "signature verification failed")
		return
	}

	rc.logger.Info("Accepted webhook delivery",
		logging.String("provider", result.Provider),
		logging.String("algorithm", string(result.Algorithm)),
		logging.Int("body_bytes", len(result.Body)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "verified",
		"provider": result.Provider,
	})
}

// Middleware wraps a handler with verification for one provider. On success
// the verification result (including the authenticated body) is stored in
// the request context; on failure the request is rejected with 401.
func Middleware(verifier *verify.Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := verifier.Verify(verify.FromHTTPHeader(r.Header), r.Body)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "signature verification failed")
				return
			}

			ctx := context.WithValue(r.Context(), resultKey, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Result returns the verification result stored by Middleware, or nil
func Result(r *http.Request) *verify.Result {
	result, _ := r.Context().Value(resultKey).(*verify.Result)
	return result
}

// Body returns the authenticated body stored by Middleware, or nil
func Body(r *http.Request) []byte {
	if result := Result(r); result != nil {
		return result.Body
	}
	return nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
