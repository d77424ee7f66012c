package verify

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"hash"
)

// macVerifier computes keyed hashes incrementally over the canonical message.
// It keeps one running HMAC state per key in the ring, so peak extra memory
// is a few hash states regardless of body length — chunks are folded in as
// they arrive and never buffered here.
type macVerifier struct {
	algorithm Algorithm
	states    []hash.Hash
}

func newMACVerifier(algorithm Algorithm, keyring Keyring) (*macVerifier, error) {
	if keyring.Len() == 0 {
		return nil, newError(ReasonSecretMisconfigured, "", "no secrets configured for %s", algorithm)
	}

	var constructor func() hash.Hash
	switch algorithm {
	case AlgorithmHMACSHA256:
		constructor = sha256.New
	case AlgorithmHMACSHA1:
		constructor = sha1.New
	default:
		return nil, newError(ReasonUnsupportedAlgorithm, "", "%s is not a MAC algorithm", algorithm)
	}

	states := make([]hash.Hash, 0, keyring.Len())
	for _, key := range keyring.keys {
		states = append(states, hmac.New(constructor, key))
	}

	return &macVerifier{algorithm: algorithm, states: states}, nil
}

// Write feeds a chunk of the canonical message into every running state
func (m *macVerifier) Write(p []byte) (int, error) {
	for _, state := range m.states {
		state.Write(p)
	}
	return len(p), nil
}

// matches finalizes the digests and compares them against every candidate.
// Comparison uses hmac.Equal, a fixed-time check over the full digest length,
// so a near-miss takes as long as a first-byte miss.
func (m *macVerifier) matches(candidates []SignatureCandidate) bool {
	for _, state := range m.states {
		digest := state.Sum(nil)
		for _, candidate := range candidates {
			if candidate.Algorithm != m.algorithm {
				continue
			}
			if hmac.Equal(digest, candidate.Raw) {
				return true
			}
		}
	}
	return false
}
