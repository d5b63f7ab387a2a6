// Package service defines ports for stateless domain logic whose concrete
// implementations live in infra (hashing, tokens, payments, mail).
package service

// PasswordHasher hashes and verifies account passwords. The domain never sees
// which algorithm backs it.
type PasswordHasher interface {
	// Hash produces a salted hash of a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
