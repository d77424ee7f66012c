package verify

import (
	"strconv"
	"strings"
	"time"
)

// extractTimestamp pulls the raw timestamp string from wherever the
// descriptor declares it: a dedicated header, or a keyed entry inside the
// signature header (Stripe's "t=...").
func extractTimestamp(d Descriptor, headers Headers) (string, error) {
	scheme := d.Timestamp

	if scheme.Header != "" {
		value := strings.TrimSpace(headers.Get(scheme.Header))
		if value == "" {
			return "", newError(ReasonMissingHeader, scheme.Header, "timestamp header is missing or empty")
		}
		return value, nil
	}

	sigValue := headers.Get(d.SignatureHeader)
	if strings.TrimSpace(sigValue) == "" {
		return "", newError(ReasonMissingHeader, d.SignatureHeader, "signature header is missing or empty")
	}

	separator := ","
	if d.MultiSignature != nil {
		separator = d.MultiSignature.Separator
	}

	prefix := scheme.SignatureKey + "="
	for _, entry := range strings.Split(sigValue, separator) {
		if value, found := strings.CutPrefix(strings.TrimSpace(entry), prefix); found {
			return value, nil
		}
	}

	return "", newError(ReasonMissingHeader, d.SignatureHeader,
		"no %q timestamp entry in signature header", scheme.SignatureKey)
}

// validateTimestamp enforces the freshness window. The check is symmetric:
// deliveries stale or future-skewed beyond the tolerance are both rejected,
// and a delivery exactly at the boundary is accepted. Malformed or negative
// values fail explicitly instead of feeding undefined arithmetic.
func validateTimestamp(raw string, tolerance time.Duration, now time.Time) error {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return newError(ReasonInvalidEncoding, "", "timestamp %q is not a unix epoch integer", raw)
	}
	if seconds < 0 {
		return newError(ReasonInvalidEncoding, "", "timestamp %q is negative", raw)
	}

	diff := now.Unix() - seconds
	if diff < 0 {
		diff = -diff
	}

	if diff > int64(tolerance/time.Second) {
		return newError(ReasonTimestampOutOfTolerance, "",
			"delivery is %ds away from now, tolerance is %s", diff, tolerance)
	}

	return nil
}
