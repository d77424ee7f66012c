package providers

import (
	"encoding/hex"
	"fmt"

	"webhook-verify/internal/verify"
)

// Discord describes Discord interaction webhooks: hex Ed25519 signature of
// "<timestamp><body>" in X-Signature-Ed25519, timestamp in
// X-Signature-Timestamp. Discord publishes the application's public key as a
// hex string.
//
// https://discord.com/developers/docs/interactions/overview
func Discord() verify.Descriptor {
	return verify.Descriptor{
		Name:            "discord",
		Algorithm:       verify.AlgorithmEd25519,
		Encoding:        verify.EncodingHex,
		SignatureHeader: "X-Signature-Ed25519",
		Timestamp:       &verify.TimestampScheme{Header: "X-Signature-Timestamp"},
		Template: []verify.TemplatePart{
			verify.TimestampRef(),
		},
	}
}

// NewDiscord builds a verifier from the hex-encoded application public key
// shown in the Discord developer portal.
func NewDiscord(publicKeyHex string, opts ...verify.Option) (*verify.Verifier, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("discord public key is not valid hex: %w", err)
	}
	return verify.New(Discord(), verify.NewKeyring(key), opts...)
}
