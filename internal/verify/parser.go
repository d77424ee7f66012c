package verify

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// SignatureCandidate is one decoded signature extracted from a header. A
// header may yield several candidates under key-rotation or versioned
// schemes; each is tried independently.
type SignatureCandidate struct {
	Algorithm Algorithm
	Encoding  Encoding
	Raw       []byte
}

// parseSignatures extracts signature candidates from the descriptor's header.
//
// Multi-entry headers follow skip-and-continue semantics: a malformed entry
// is recorded and skipped, and the request fails only if no entry parses at
// all (or later, if every parsed candidate fails verification). Strict mode
// turns any malformed entry into an immediate failure instead.
func parseSignatures(d Descriptor, headers Headers, strict bool) ([]SignatureCandidate, []string, error) {
	value := strings.TrimSpace(headers.Get(d.SignatureHeader))
	if value == "" {
		return nil, nil, newError(ReasonMissingHeader, d.SignatureHeader, "signature header is missing or empty")
	}

	if d.MultiSignature != nil {
		return parseMultiSignature(d, value, strict)
	}

	candidate, err := parseSingleSignature(d, value)
	if err != nil {
		return nil, nil, err
	}
	return []SignatureCandidate{candidate}, nil, nil
}

func parseSingleSignature(d Descriptor, value string) (SignatureCandidate, error) {
	if d.SignaturePrefix != "" {
		stripped, found := strings.CutPrefix(value, d.SignaturePrefix)
		if !found {
			return SignatureCandidate{}, newError(ReasonUnsupportedAlgorithm, d.SignatureHeader,
				"expected %q algorithm prefix, got %q", d.SignaturePrefix, value)
		}
		value = stripped
	}

	raw, err := decodeSignature(d.Encoding, value)
	if err != nil {
		return SignatureCandidate{}, newError(ReasonInvalidEncoding, d.SignatureHeader,
			"signature is not valid %s: %v", d.Encoding, err)
	}

	return SignatureCandidate{Algorithm: d.Algorithm, Encoding: d.Encoding, Raw: raw}, nil
}

func parseMultiSignature(d Descriptor, value string, strict bool) ([]SignatureCandidate, []string, error) {
	scheme := d.MultiSignature

	var candidates []SignatureCandidate
	var skipped []string

	for _, entry := range strings.Split(value, scheme.Separator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if scheme.EntryPrefix != "" {
			stripped, found := strings.CutPrefix(entry, scheme.EntryPrefix)
			if !found {
				// Not a signature entry: a metadata field like "t=..." or a
				// signature version this descriptor does not know.
				continue
			}
			entry = stripped
		}

		raw, err := decodeSignature(d.Encoding, entry)
		if err != nil {
			skipped = append(skipped, err.Error())
			continue
		}
		candidates = append(candidates, SignatureCandidate{
			Algorithm: d.Algorithm,
			Encoding:  d.Encoding,
			Raw:       raw,
		})
	}

	if strict && len(skipped) > 0 {
		return nil, skipped, newError(ReasonInvalidEncoding, d.SignatureHeader,
			"malformed signature entries: %s", strings.Join(skipped, "; "))
	}

	if len(candidates) == 0 {
		if len(skipped) > 0 {
			return nil, skipped, newError(ReasonInvalidEncoding, d.SignatureHeader,
				"no entry decoded: %s", strings.Join(skipped, "; "))
		}
		return nil, nil, newError(ReasonInvalidEncoding, d.SignatureHeader,
			"no signature entries found in header value")
	}

	return candidates, skipped, nil
}

func decodeSignature(encoding Encoding, value string) ([]byte, error) {
	switch encoding {
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(value)
	default:
		return hex.DecodeString(value)
	}
}
