// Package providers holds the built-in webhook provider descriptors.
//
// Each descriptor is a static capability record for one provider's signing
// convention: header names, canonical-message template, encoding and
// algorithm. Custom providers need no changes here — build a
// verify.Descriptor by hand and hand it to verify.New.
package providers

import (
	"webhook-verify/internal/verify"
)

// Descriptors returns the built-in provider table keyed by provider name
func Descriptors() map[string]verify.Descriptor {
	table := map[string]verify.Descriptor{}
	for _, d := range []verify.Descriptor{
		GitHub(),
		GitHubLegacy(),
		Stripe(),
		Slack(),
		Shopify(),
		Discord(),
		SendGrid(),
		Standard(),
	} {
		table[d.Name] = d
	}
	return table
}
