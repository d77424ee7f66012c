package verify

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"fmt"
	"io"
	"time"

	"webhook-verify/internal/common/logging"
)

// Result is the successful outcome of a verification: which provider and
// algorithm matched, plus the raw body the engine consumed while hashing, so
// the caller can deserialize it without re-reading the request.
type Result struct {
	Provider  string
	Algorithm Algorithm
	Body      []byte
}

// Verifier runs the verification sequence for one provider descriptor. It is
// immutable after construction and safe for concurrent use: every call builds
// its own hash state and canonical message, and the verifier holds no mutable
// state across calls.
type Verifier struct {
	descriptor Descriptor
	keyring    Keyring
	tolerance  time.Duration
	strict     bool
	logger     logging.Logger
	now        func() time.Time

	// parsed key material for the public-key path
	edKeys []ed25519.PublicKey
	ecKeys []*ecdsa.PublicKey
}

// Option customizes a Verifier at construction time
type Option func(*Verifier)

// WithTolerance overrides the descriptor's freshness window
func WithTolerance(tolerance time.Duration) Option {
	return func(v *Verifier) { v.tolerance = tolerance }
}

// WithStrictParsing makes any malformed entry in a multi-signature header an
// immediate failure instead of being skipped.
func WithStrictParsing() Option {
	return func(v *Verifier) { v.strict = true }
}

// WithLogger sets the logger used for per-verification diagnostics
func WithLogger(logger logging.Logger) Option {
	return func(v *Verifier) { v.logger = logger }
}

// WithClock overrides the time source for the freshness check; used in tests
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// New builds a verifier for the descriptor with the given key material. For
// MAC descriptors the keyring holds one or more symmetric secrets; for
// public-key descriptors it holds encoded public keys, which are parsed and
// validated here so a bad key fails at configuration time rather than per
// request.
func New(descriptor Descriptor, keyring Keyring, opts ...Option) (*Verifier, error) {
	if err := descriptor.Validate(); err != nil {
		return nil, fmt.Errorf("invalid descriptor %q: %w", descriptor.Name, err)
	}

	v := &Verifier{
		descriptor: descriptor,
		keyring:    keyring,
		tolerance:  descriptor.tolerance(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = logging.NewDefaultLogger()
	}
	if v.tolerance <= 0 {
		v.tolerance = DefaultTolerance
	}

	if keyring.Len() == 0 {
		return nil, newError(ReasonSecretMisconfigured, "", "no key material for %q", descriptor.Name)
	}

	if descriptor.Strategy() == StrategyPublicKey {
		if err := v.parsePublicKeys(); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func (v *Verifier) parsePublicKeys() error {
	for _, raw := range v.keyring.keys {
		switch v.descriptor.Algorithm {
		case AlgorithmEd25519:
			if len(raw) != ed25519.PublicKeySize {
				return newError(ReasonSecretMisconfigured, "",
					"ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
			}
			v.edKeys = append(v.edKeys, ed25519.PublicKey(raw))

		case AlgorithmECDSAP256:
			key, err := parseECDSAP256PublicKey(raw)
			if err != nil {
				return newError(ReasonSecretMisconfigured, "", "bad ECDSA public key: %v", err)
			}
			v.ecKeys = append(v.ecKeys, key)
		}
	}
	return nil
}

// Descriptor returns the provider descriptor this verifier was built from
func (v *Verifier) Descriptor() Descriptor {
	return v.descriptor
}

// Stream is a single in-flight verification. Headers are checked up front;
// body chunks are fed through Write as they arrive and the verdict is
// delivered by Close. Abandoning a stream (e.g. the sender hung up) needs no
// cleanup — the partial hash state is simply garbage collected.
type Stream struct {
	v          *Verifier
	candidates []SignatureCandidate
	mac        *macVerifier  // MAC path: incremental state
	message    *bytes.Buffer // public-key path: buffered canonical message
	closed     bool
	algorithm  Algorithm
}

// Begin checks the timestamp, extracts signature candidates, and prepares the
// canonical-message state. Any header-level failure surfaces here, before a
// single body byte is read.
func (v *Verifier) Begin(headers Headers) (*Stream, error) {
	d := v.descriptor

	var timestamp string
	if d.Timestamp != nil {
		raw, err := extractTimestamp(d, headers)
		if err != nil {
			return nil, v.reject(err)
		}
		if err := validateTimestamp(raw, v.tolerance, v.now()); err != nil {
			return nil, v.reject(err)
		}
		timestamp = raw
	}

	candidates, skipped, err := parseSignatures(d, headers, v.strict)
	if err != nil {
		return nil, v.reject(err)
	}
	if len(skipped) > 0 {
		v.logger.Debug("Skipped malformed signature entries",
			logging.Field{Key: "provider", Value: d.Name},
			logging.Field{Key: "skipped", Value: skipped},
		)
	}

	prefix, err := buildPrefix(d, headers, timestamp)
	if err != nil {
		return nil, v.reject(err)
	}

	s := &Stream{v: v, candidates: candidates}
	if d.Strategy() == StrategyMAC {
		mac, err := newMACVerifier(d.Algorithm, v.keyring)
		if err != nil {
			return nil, v.reject(err)
		}
		mac.Write(prefix)
		s.mac = mac
	} else {
		s.message = bytes.NewBuffer(prefix)
	}

	return s, nil
}

// Write feeds the next body chunk into the verification state
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("verification stream already closed")
	}
	if s.mac != nil {
		return s.mac.Write(p)
	}
	return s.message.Write(p)
}

// Close finalizes the verification and returns nil on success or the typed
// failure. After a successful Close, Algorithm reports what matched.
func (s *Stream) Close() error {
	if s.closed {
		return fmt.Errorf("verification stream already closed")
	}
	s.closed = true

	d := s.v.descriptor
	if s.mac != nil {
		if !s.mac.matches(s.candidates) {
			return s.v.reject(newError(ReasonSignatureMismatch, d.SignatureHeader,
				"digest matched none of %d candidate(s) under %d key(s)", len(s.candidates), s.v.keyring.Len()))
		}
	} else {
		if err := s.v.verifyAsymmetric(s.message.Bytes(), s.candidates); err != nil {
			return s.v.reject(err)
		}
	}

	s.algorithm = d.Algorithm
	s.v.logger.Debug("Webhook signature verified",
		logging.Field{Key: "provider", Value: d.Name},
		logging.Field{Key: "algorithm", Value: string(d.Algorithm)},
	)
	return nil
}

// Algorithm returns the matched algorithm after a successful Close
func (s *Stream) Algorithm() Algorithm {
	return s.algorithm
}

// Verify consumes the body reader, verifying as it reads, and returns the raw
// body on success. The body is hashed chunk by chunk; it is retained only so
// the caller gets the exact bytes that were authenticated.
func (v *Verifier) Verify(headers Headers, body io.Reader) (*Result, error) {
	stream, err := v.Begin(headers)
	if err != nil {
		return nil, err
	}

	var raw bytes.Buffer
	if body != nil {
		if _, err := io.Copy(io.MultiWriter(stream, &raw), body); err != nil {
			return nil, fmt.Errorf("reading webhook body: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return nil, err
	}

	return &Result{
		Provider:  v.descriptor.Name,
		Algorithm: stream.Algorithm(),
		Body:      raw.Bytes(),
	}, nil
}

// VerifyBytes verifies an already-buffered body
func (v *Verifier) VerifyBytes(headers Headers, body []byte) (*Result, error) {
	return v.Verify(headers, bytes.NewReader(body))
}

// buildPrefix renders the canonical-message template that precedes the body
func buildPrefix(d Descriptor, headers Headers, timestamp string) ([]byte, error) {
	if len(d.Template) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	for _, part := range d.Template {
		switch part.Kind {
		case PartLiteral:
			buf.WriteString(part.Value)
		case PartTimestamp:
			buf.WriteString(timestamp)
		case PartHeader:
			value := headers.Get(part.Value)
			if value == "" {
				return nil, newError(ReasonMissingHeader, part.Value, "header required by signing template is missing")
			}
			buf.WriteString(value)
		}
	}
	return buf.Bytes(), nil
}

// reject logs the failure and passes it through unchanged
func (v *Verifier) reject(err error) error {
	fields := []logging.Field{
		{Key: "provider", Value: v.descriptor.Name},
		{Key: "error", Value: err.Error()},
	}
	if reason := ReasonOf(err); reason != "" {
		fields = append(fields, logging.Field{Key: "reason", Value: string(reason)})
	}
	v.logger.Warn("Webhook verification failed", fields...)
	return err
}
