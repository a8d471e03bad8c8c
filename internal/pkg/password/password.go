package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor
	DefaultCost = 12
)

// Hash hashes a password using bcrypt. The salt is generated per call and
// baked into the digest, so Verify needs nothing beyond the digest itself.
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a digest. Returns false on mismatch or a
// malformed digest; a wrong password is never an error.
func Verify(plain, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	return err == nil
}

// HashToken hashes a refresh token using SHA-256. Only this digest is ever
// persisted; a database read alone cannot yield a usable bearer credential.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
