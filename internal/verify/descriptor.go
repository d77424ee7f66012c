package verify

import (
	"fmt"
	"time"
)

// Algorithm identifies the signing algorithm family a provider uses
type Algorithm string

const (
	// AlgorithmHMACSHA256 is HMAC with SHA-256, the most common webhook scheme
	AlgorithmHMACSHA256 Algorithm = "hmac-sha256"
	// AlgorithmHMACSHA1 is HMAC with SHA-1, kept for legacy providers
	AlgorithmHMACSHA1 Algorithm = "hmac-sha1"
	// AlgorithmEd25519 is the Ed25519 public-key signature scheme
	AlgorithmEd25519 Algorithm = "ed25519"
	// AlgorithmECDSAP256 is ECDSA over P-256 with SHA-256 and ASN.1/DER signatures
	AlgorithmECDSAP256 Algorithm = "ecdsa-p256"
)

// Strategy selects which verification path the orchestrator runs
type Strategy int

const (
	// StrategyMAC verifies with a shared-secret keyed hash
	StrategyMAC Strategy = iota
	// StrategyPublicKey verifies an asymmetric signature
	StrategyPublicKey
)

// Encoding is the wire encoding of signature bytes in the header
type Encoding string

const (
	// EncodingHex is lowercase hex encoding
	EncodingHex Encoding = "hex"
	// EncodingBase64 is standard (padded) base64 encoding
	EncodingBase64 Encoding = "base64"
)

// DefaultTolerance is the freshness window applied when a descriptor declares
// a timestamp scheme but no tolerance of its own.
const DefaultTolerance = 5 * time.Minute

// MultiSignature describes a header that packs several signatures, as used by
// key-rotation and versioned schemes. Entries are split on Separator; only
// entries starting with EntryPrefix are treated as signatures, so metadata
// entries (Stripe's "t=...") are ignored rather than rejected.
type MultiSignature struct {
	// Separator between entries, e.g. " " (Standard Webhooks) or "," (Stripe)
	Separator string

	// EntryPrefix marks signature entries, e.g. "v1," or "v1=". Empty means
	// every entry is a signature.
	EntryPrefix string
}

// TimestampScheme declares where the delivery timestamp lives. Exactly one of
// Header or SignatureKey is set: either the timestamp has its own header, or
// it is packed into the signature header as "<key>=<value>".
type TimestampScheme struct {
	// Header is the name of a dedicated timestamp header
	Header string

	// SignatureKey is the entry key inside the signature header, e.g. "t"
	SignatureKey string
}

// PartKind discriminates canonical-message template parts
type PartKind int

const (
	// PartLiteral is a fixed byte sequence
	PartLiteral PartKind = iota
	// PartHeader inserts the value of a request header
	PartHeader
	// PartTimestamp inserts the raw delivery timestamp string
	PartTimestamp
)

// TemplatePart is one element of the canonical-message prefix
type TemplatePart struct {
	Kind  PartKind
	Value string
}

// Literal returns a fixed-text template part
func Literal(text string) TemplatePart {
	return TemplatePart{Kind: PartLiteral, Value: text}
}

// HeaderRef returns a template part that inserts a request header value
func HeaderRef(name string) TemplatePart {
	return TemplatePart{Kind: PartHeader, Value: name}
}

// TimestampRef returns a template part that inserts the delivery timestamp
func TimestampRef() TemplatePart {
	return TemplatePart{Kind: PartTimestamp}
}

// Descriptor is an immutable description of a provider's signing convention.
// It is created once at configuration time and shared by all verifications
// for that provider; the engine never mutates it.
type Descriptor struct {
	// Name identifies the provider in logs and results
	Name string

	// Algorithm is the signing algorithm family
	Algorithm Algorithm

	// Encoding of the signature bytes in the header
	Encoding Encoding

	// SignatureHeader is the header carrying the signature material
	SignatureHeader string

	// SignaturePrefix is an algorithm tag stripped from a single-valued
	// header, e.g. "sha256=" or "v0=". A present header without this prefix
	// fails with ReasonUnsupportedAlgorithm.
	SignaturePrefix string

	// MultiSignature, when set, makes the header a multi-entry scheme and
	// SignaturePrefix is ignored
	MultiSignature *MultiSignature

	// Timestamp, when set, enables the freshness check. Providers without a
	// timestamp scheme leave it nil; the check is then skipped by
	// declaration, never by inference.
	Timestamp *TimestampScheme

	// Template is the canonical-message prefix prepended to the raw body,
	// e.g. id "." timestamp "." for Standard Webhooks. An empty template
	// means the body alone is signed.
	Template []TemplatePart

	// Tolerance is the freshness window. Zero means DefaultTolerance.
	Tolerance time.Duration
}

// Strategy returns the verification path implied by the algorithm
func (d Descriptor) Strategy() Strategy {
	switch d.Algorithm {
	case AlgorithmEd25519, AlgorithmECDSAP256:
		return StrategyPublicKey
	default:
		return StrategyMAC
	}
}

// Validate checks that the descriptor is internally consistent
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor name is required")
	}

	if d.SignatureHeader == "" {
		return fmt.Errorf("signature header is required")
	}

	switch d.Algorithm {
	case AlgorithmHMACSHA256, AlgorithmHMACSHA1, AlgorithmEd25519, AlgorithmECDSAP256:
	default:
		return fmt.Errorf("unsupported algorithm: %s", d.Algorithm)
	}

	switch d.Encoding {
	case EncodingHex, EncodingBase64:
	default:
		return fmt.Errorf("unsupported encoding: %s", d.Encoding)
	}

	if d.MultiSignature != nil && d.MultiSignature.Separator == "" {
		return fmt.Errorf("multi-signature separator is required")
	}

	if ts := d.Timestamp; ts != nil {
		if ts.Header == "" && ts.SignatureKey == "" {
			return fmt.Errorf("timestamp scheme needs a header or a signature-header key")
		}
		if ts.Header != "" && ts.SignatureKey != "" {
			return fmt.Errorf("timestamp scheme cannot use both a header and a signature-header key")
		}
	}

	for _, part := range d.Template {
		if part.Kind == PartTimestamp && d.Timestamp == nil {
			return fmt.Errorf("template references a timestamp but no timestamp scheme is declared")
		}
		if part.Kind == PartHeader && part.Value == "" {
			return fmt.Errorf("template header reference needs a header name")
		}
	}

	if d.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}

	return nil
}

// tolerance returns the effective freshness window
func (d Descriptor) tolerance() time.Duration {
	if d.Tolerance > 0 {
		return d.Tolerance
	}
	return DefaultTolerance
}
