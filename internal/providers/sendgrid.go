package providers

import (
	"encoding/base64"
	"fmt"

	"webhook-verify/internal/verify"
)

// SendGrid describes Twilio SendGrid's event webhook: base64 ECDSA P-256
// signature (ASN.1/DER) of "<timestamp><body>" in
// X-Twilio-Email-Event-Webhook-Signature, timestamp in
// X-Twilio-Email-Event-Webhook-Timestamp. The verification key from the
// SendGrid dashboard is a base64 PKIX public key.
//
// https://www.twilio.com/docs/sendgrid/for-developers/tracking-events/getting-started-event-webhook-security-features
func SendGrid() verify.Descriptor {
	return verify.Descriptor{
		Name:            "sendgrid",
		Algorithm:       verify.AlgorithmECDSAP256,
		Encoding:        verify.EncodingBase64,
		SignatureHeader: "X-Twilio-Email-Event-Webhook-Signature",
		Timestamp:       &verify.TimestampScheme{Header: "X-Twilio-Email-Event-Webhook-Timestamp"},
		Template: []verify.TemplatePart{
			verify.TimestampRef(),
		},
	}
}

// NewSendGrid builds a verifier from the base64 verification key from the
// SendGrid dashboard.
func NewSendGrid(publicKeyBase64 string, opts ...verify.Option) (*verify.Verifier, error) {
	key, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("sendgrid verification key is not valid base64: %w", err)
	}
	return verify.New(SendGrid(), verify.NewKeyring(key), opts...)
}
