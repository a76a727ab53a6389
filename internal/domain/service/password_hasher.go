// Package service declares the domain services the use cases depend on.
package service

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash.
	Check(password, hash string) bool

	// NeedsRehash reports whether hash was produced with other parameters
	// than the hasher currently uses, so a login can upgrade it.
	NeedsRehash(hash string) bool
}
