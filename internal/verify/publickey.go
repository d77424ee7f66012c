package verify

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
)

// parseECDSAP256PublicKey accepts the two encodings providers hand out:
// PKIX/DER (SendGrid's base64 verification key decodes to this) and raw SEC1
// points, compressed or uncompressed.
func parseECDSAP256PublicKey(raw []byte) (*ecdsa.PublicKey, error) {
	if parsed, err := x509.ParsePKIXPublicKey(raw); err == nil {
		key, ok := parsed.(*ecdsa.PublicKey)
		if !ok || key.Curve != elliptic.P256() {
			return nil, fmt.Errorf("public key is not ECDSA P-256")
		}
		return key, nil
	}

	curve := elliptic.P256()
	x, y := elliptic.Unmarshal(curve, raw)
	if x == nil {
		x, y = elliptic.UnmarshalCompressed(curve, raw)
	}
	if x == nil {
		return nil, fmt.Errorf("public key is neither PKIX nor SEC1 P-256")
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// verifyAsymmetric checks the candidates against the parsed public keys over
// a contiguous canonical message. Asymmetric providers sign short canonical
// strings, so no streaming is needed on this path. Candidates are tried in
// order and the first match wins; candidates malformed for the curve are
// skipped, and if none was well-formed the failure is an encoding problem
// rather than a mismatch.
func (v *Verifier) verifyAsymmetric(message []byte, candidates []SignatureCandidate) error {
	header := v.descriptor.SignatureHeader
	sawWellFormed := false

	switch v.descriptor.Algorithm {
	case AlgorithmEd25519:
		for _, candidate := range candidates {
			if len(candidate.Raw) != ed25519.SignatureSize {
				continue
			}
			sawWellFormed = true
			for _, key := range v.edKeys {
				if ed25519.Verify(key, message, candidate.Raw) {
					return nil
				}
			}
		}

	case AlgorithmECDSAP256:
		digest := sha256.Sum256(message)
		for _, candidate := range candidates {
			// DER SEQUENCE tag; anything else cannot be an ASN.1 signature
			if len(candidate.Raw) == 0 || candidate.Raw[0] != 0x30 {
				continue
			}
			sawWellFormed = true
			for _, key := range v.ecKeys {
				if ecdsa.VerifyASN1(key, digest[:], candidate.Raw) {
					return nil
				}
			}
		}

	default:
		return newError(ReasonUnsupportedAlgorithm, header, "%s is not a public-key algorithm", v.descriptor.Algorithm)
	}

	if !sawWellFormed {
		return newError(ReasonInvalidEncoding, header,
			"no candidate has a valid %s signature format", v.descriptor.Algorithm)
	}
	return newError(ReasonSignatureMismatch, header, "no candidate matched under any configured key")
}
