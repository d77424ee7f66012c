package verify

import (
	"net/http"
	"strings"
)

// Headers is a case-insensitive view of request headers. Keys are folded to
// lower case on construction so lookups never depend on the sender's casing.
type Headers map[string]string

// NewHeaders builds a Headers map from arbitrary-cased key/value pairs
func NewHeaders(values map[string]string) Headers {
	h := make(Headers, len(values))
	for name, value := range values {
		h[strings.ToLower(name)] = value
	}
	return h
}

// FromHTTPHeader converts a net/http header map, keeping the first value of
// each header.
func FromHTTPHeader(src http.Header) Headers {
	h := make(Headers, len(src))
	for name, values := range src {
		if len(values) > 0 {
			h[strings.ToLower(name)] = values[0]
		}
	}
	return h
}

// Get returns the header value, or "" when absent
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Set stores a header value
func (h Headers) Set(name, value string) {
	h[strings.ToLower(name)] = value
}
