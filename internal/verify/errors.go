package verify

import (
	"errors"
	"fmt"
)

// Reason classifies why a verification attempt failed. Every failure the
// engine produces carries exactly one reason; all of them are terminal for
// the request being checked.
type Reason string

const (
	// ReasonMissingHeader is returned when a header the descriptor requires
	// is absent or empty. Absence of a required header is always a failure,
	// never a skipped check.
	ReasonMissingHeader Reason = "missing_header"

	// ReasonInvalidEncoding is returned when signature or timestamp material
	// cannot be decoded (bad hex/base64, malformed number, wrong signature
	// length for the curve).
	ReasonInvalidEncoding Reason = "invalid_encoding"

	// ReasonUnsupportedAlgorithm is returned when the header carries an
	// algorithm tag that does not match the descriptor's algorithm.
	ReasonUnsupportedAlgorithm Reason = "unsupported_algorithm"

	// ReasonSignatureMismatch is returned when no candidate signature matches
	// under any configured key.
	ReasonSignatureMismatch Reason = "signature_mismatch"

	// ReasonTimestampOutOfTolerance is returned when the delivery timestamp
	// is outside the freshness window in either direction.
	ReasonTimestampOutOfTolerance Reason = "timestamp_out_of_tolerance"

	// ReasonSecretMisconfigured is returned when the key material for the
	// descriptor's strategy is empty or unusable.
	ReasonSecretMisconfigured Reason = "secret_misconfigured"
)

// Error is a failed verification outcome. It is terminal and non-retryable;
// callers should surface it as an authentication rejection and keep the
// reason for diagnostics only.
type Error struct {
	// Reason is the failure classification
	Reason Reason

	// Header names the request header involved, when one is
	Header string

	// Message is a human-readable description for logs
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("webhook verification failed (%s) for header %q: %s", e.Reason, e.Header, e.Message)
	}
	return fmt.Sprintf("webhook verification failed (%s): %s", e.Reason, e.Message)
}

func newError(reason Reason, header, format string, args ...interface{}) *Error {
	return &Error{
		Reason:  reason,
		Header:  header,
		Message: fmt.Sprintf(format, args...),
	}
}

// ReasonOf extracts the failure reason from an error returned by this
// package. It returns the empty string for nil or foreign errors.
func ReasonOf(err error) Reason {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return ""
}

// IsReason reports whether err is a verification failure with the given reason
func IsReason(err error, reason Reason) bool {
	return ReasonOf(err) == reason
}
