// Package verify authenticates inbound webhook deliveries.
//
// Given a request's headers and raw body plus a provider Descriptor, the
// engine decides whether the request was produced by the claimed sender and
// is fresh enough to not be a replay. It extracts signature material from
// headers, reconstructs the exact bytes that were signed, computes or checks
// a cryptographic proof over those bytes, and validates delivery freshness.
//
// # Verification sequence
//
// Each call runs a linear sequence with early exit:
//
//	timestamp check (if the descriptor declares one)
//	signature extraction
//	signature verification (MAC or public-key, per descriptor)
//
// Any failure short-circuits into a typed *Error carrying one of the Reason
// values; nothing is retried, and malformed attacker-controlled input always
// becomes a typed failure rather than a panic.
//
// # Strategies
//
//   - MAC descriptors (HMAC-SHA256, HMAC-SHA1) hash the canonical message
//     incrementally, one running state per key in the ring, and compare the
//     finished digest to every candidate with a constant-time check.
//   - Public-key descriptors (Ed25519, ECDSA P-256) verify the signature over
//     a contiguous canonical message; keys are parsed at construction time.
//
// # Streaming
//
// The Begin/Write/Close API verifies a body that arrives in chunks without
// buffering it: header checks happen in Begin, chunks feed running hash
// state, and Close delivers the verdict. Verify wraps this for io.Reader
// bodies and returns the authenticated bytes for deserialization.
//
// # Usage
//
//	v, err := verify.New(providers.GitHub(), verify.NewKeyring(secret))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := v.Verify(verify.FromHTTPHeader(r.Header), r.Body)
//	if err != nil {
//	    http.Error(w, "unauthorized", http.StatusUnauthorized)
//	    return
//	}
//	// result.Body holds the authenticated payload
//
// Verifiers are immutable and safe for concurrent use; each call builds its
// own hash state and canonical message.
package verify
