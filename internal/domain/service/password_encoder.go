// Package service holds domain ports whose implementations live in infrastructure.
package service

// PasswordEncoder turns plaintext passwords into storable digests and checks
// candidates against them.
type PasswordEncoder interface {
	// Encode returns a fresh salted digest; two calls never return the same value.
	Encode(raw string) (string, error)
	// Matches reports whether raw produces the digest. Malformed digests
	// report false.
	Matches(raw, digest string) bool
}
