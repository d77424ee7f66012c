package providers

import (
	"webhook-verify/internal/verify"
)

// Stripe describes Stripe's webhook convention: the Stripe-Signature header
// is a comma-separated list of entries where "t=" carries the timestamp and
// "v1=" entries carry hex HMAC-SHA256 signatures of "<timestamp>.<body>".
// Stripe emits several v1 entries while a secret is being rolled.
//
// https://docs.stripe.com/webhooks#verify-manually
func Stripe() verify.Descriptor {
	return verify.Descriptor{
		Name:            "stripe",
		Algorithm:       verify.AlgorithmHMACSHA256,
		Encoding:        verify.EncodingHex,
		SignatureHeader: "Stripe-Signature",
		MultiSignature: &verify.MultiSignature{
			Separator:   ",",
			EntryPrefix: "v1=",
		},
		Timestamp: &verify.TimestampScheme{SignatureKey: "t"},
		Template: []verify.TemplatePart{
			verify.TimestampRef(),
			verify.Literal("."),
		},
	}
}

// NewStripe builds a verifier for Stripe webhooks
func NewStripe(secrets ...[]byte) (*verify.Verifier, error) {
	return verify.New(Stripe(), verify.NewKeyring(secrets...))
}
