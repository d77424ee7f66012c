package providers

import (
	"webhook-verify/internal/verify"
)

// Slack describes Slack's request signing: hex HMAC-SHA256 of
// "v0:<timestamp>:<body>" in the X-Slack-Signature header with a "v0="
// prefix, timestamp in X-Slack-Request-Timestamp.
//
// https://docs.slack.dev/authentication/verifying-requests-from-slack
func Slack() verify.Descriptor {
	return verify.Descriptor{
		Name:            "slack",
		Algorithm:       verify.AlgorithmHMACSHA256,
		Encoding:        verify.EncodingHex,
		SignatureHeader: "X-Slack-Signature",
		SignaturePrefix: "v0=",
		Timestamp:       &verify.TimestampScheme{Header: "X-Slack-Request-Timestamp"},
		Template: []verify.TemplatePart{
			verify.Literal("v0:"),
			verify.TimestampRef(),
			verify.Literal(":"),
		},
	}
}

// NewSlack builds a verifier for Slack webhooks
func NewSlack(secrets ...[]byte) (*verify.Verifier, error) {
	return verify.New(Slack(), verify.NewKeyring(secrets...))
}
