package providers

import (
	"webhook-verify/internal/verify"
)

// Shopify describes Shopify's webhook convention: bare base64 HMAC-SHA256 of
// the raw body in the X-Shopify-Hmac-Sha256 header.
//
// https://shopify.dev/docs/apps/build/webhooks/subscribe/https
func Shopify() verify.Descriptor {
	return verify.Descriptor{
		Name:            "shopify",
		Algorithm:       verify.AlgorithmHMACSHA256,
		Encoding:        verify.EncodingBase64,
		SignatureHeader: "X-Shopify-Hmac-Sha256",
	}
}

// NewShopify builds a verifier for Shopify webhooks
func NewShopify(secrets ...[]byte) (*verify.Verifier, error) {
	return verify.New(Shopify(), verify.NewKeyring(secrets...))
}
