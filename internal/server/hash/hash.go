// Package hash provides the one-way password hashing capability used by the
// authentication service. The orchestrator only sees the Hasher interface.
package hash

// Hasher hashes plaintext passwords and verifies candidates against stored
// digests. Verify must run in time independent of how much of the candidate
// matches.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
