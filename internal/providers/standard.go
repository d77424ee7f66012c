package providers

import (
	"encoding/base64"
	"fmt"
	"strings"

	"webhook-verify/internal/verify"
)

// DefaultStandardPrefix is the header-name prefix the Standard Webhooks spec
// uses; Svix-hosted senders use "svix-" instead.
const DefaultStandardPrefix = "webhook-"

// Standard describes the Standard Webhooks convention used by Svix, Resend,
// Clerk and others: base64 HMAC-SHA256 of "<id>.<timestamp>.<body>", with
// space-separated "v1,"-prefixed signatures in the signature header. Header
// names are "<prefix>id", "<prefix>timestamp" and "<prefix>signature".
//
// https://github.com/standard-webhooks/standard-webhooks/blob/main/spec/standard-webhooks.md
func Standard() verify.Descriptor {
	return StandardWithPrefix(DefaultStandardPrefix)
}

// StandardWithPrefix returns the Standard Webhooks descriptor with a custom
// header-name prefix, dash included (e.g. "svix-").
func StandardWithPrefix(headerPrefix string) verify.Descriptor {
	return verify.Descriptor{
		Name:            "standard",
		Algorithm:       verify.AlgorithmHMACSHA256,
		Encoding:        verify.EncodingBase64,
		SignatureHeader: headerPrefix + "signature",
		MultiSignature: &verify.MultiSignature{
			Separator:   " ",
			EntryPrefix: "v1,",
		},
		Timestamp: &verify.TimestampScheme{Header: headerPrefix + "timestamp"},
		Template: []verify.TemplatePart{
			verify.HeaderRef(headerPrefix + "id"),
			verify.Literal("."),
			verify.TimestampRef(),
			verify.Literal("."),
		},
	}
}

// DecodeStandardSecret turns a Standard Webhooks signing secret into key
// bytes. Secrets are base64, usually carrying a "whsec_" prefix; the prefix
// is optional.
func DecodeStandardSecret(secret string) ([]byte, error) {
	encoded := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("standard webhooks secret is not valid base64: %w", err)
	}
	return key, nil
}

// NewStandard builds a verifier for Standard Webhooks deliveries from one or
// more "whsec_" secrets (rotation set).
func NewStandard(secrets ...string) (*verify.Verifier, error) {
	return NewStandardWithPrefix(DefaultStandardPrefix, secrets...)
}

// NewStandardWithPrefix is NewStandard with a custom header-name prefix
func NewStandardWithPrefix(headerPrefix string, secrets ...string) (*verify.Verifier, error) {
	keys := make([][]byte, 0, len(secrets))
	for _, secret := range secrets {
		key, err := DecodeStandardSecret(secret)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return verify.New(StandardWithPrefix(headerPrefix), verify.NewKeyring(keys...))
}
