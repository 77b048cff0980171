// Package cryptox hashes and verifies patient and caregiver passwords.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// GenerateSalt returns SaltSize random bytes.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the stored hash for password with Argon2id.
// The same password and salt always give the same hash.
func HashPassword(password string, salt []byte) []byte {
	pw := []byte(password)
	defer Wipe(pw)
	return argon2.IDKey(pw, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password string, salt, hash []byte) bool {
	return subtle.ConstantTimeCompare(HashPassword(password, salt), hash) == 1
}

// Wipe zeroes b. A nil slice is left alone.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
