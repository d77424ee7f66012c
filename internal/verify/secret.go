package verify

// Keyring holds the key material for one provider: symmetric secrets for MAC
// descriptors or encoded public keys for asymmetric ones. More than one entry
// means rotation — a signature under any member is accepted. The engine only
// borrows the keys for the duration of a verification call and never mutates
// them.
type Keyring struct {
	keys [][]byte
}

// NewKeyring builds a keyring from raw key material. The byte slices are
// copied so later mutation by the caller cannot affect in-flight
// verifications.
func NewKeyring(keys ...[]byte) Keyring {
	copied := make([][]byte, 0, len(keys))
	for _, key := range keys {
		dup := make([]byte, len(key))
		copy(dup, key)
		copied = append(copied, dup)
	}
	return Keyring{keys: copied}
}

// Len reports the number of keys in the ring
func (k Keyring) Len() int {
	return len(k.keys)
}
