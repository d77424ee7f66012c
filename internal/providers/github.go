package providers

import (
	"webhook-verify/internal/verify"
)

// GitHub describes GitHub's webhook convention: hex HMAC-SHA256 of the raw
// body in the X-Hub-Signature-256 header with a "sha256=" prefix. GitHub
// sends no timestamp, so there is no freshness check.
//
// https://docs.github.com/en/webhooks/using-webhooks/validating-webhook-deliveries
func GitHub() verify.Descriptor {
	return verify.Descriptor{
		Name:            "github",
		Algorithm:       verify.AlgorithmHMACSHA256,
		Encoding:        verify.EncodingHex,
		SignatureHeader: "X-Hub-Signature-256",
		SignaturePrefix: "sha256=",
	}
}

// GitHubLegacy describes the older X-Hub-Signature header, a hex HMAC-SHA1
// of the body with a "sha1=" prefix. Only for endpoints that still receive
// the legacy header.
func GitHubLegacy() verify.Descriptor {
	return verify.Descriptor{
		Name:            "github-legacy",
		Algorithm:       verify.AlgorithmHMACSHA1,
		Encoding:        verify.EncodingHex,
		SignatureHeader: "X-Hub-Signature",
		SignaturePrefix: "sha1=",
	}
}

// NewGitHub builds a verifier for GitHub webhooks. Multiple secrets form a
// rotation set: a signature under any of them is accepted.
func NewGitHub(secrets ...[]byte) (*verify.Verifier, error) {
	return verify.New(GitHub(), verify.NewKeyring(secrets...))
}
