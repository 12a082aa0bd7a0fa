package hash

// Hash produces and verifies keyed digests. One-time passcodes are stored
// only as digests; verification compares the submitted plaintext against the
// stored digest in constant time.
type Hash interface {
	// Hash returns the digest of str.
	Hash(str string) ([]byte, error)
	// Verify reports whether str matches the previously produced digest.
	Verify(hashed, str string) bool
}
