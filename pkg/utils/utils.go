package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into stored digests and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// SHA256Hasher produces deterministic, fixed-length hex SHA-256 digests.
// Digests are compatible with identity records written by earlier releases.
type SHA256Hasher struct{}

// Hash returns the lowercase hex SHA-256 of password.
func (SHA256Hasher) Hash(password string) (string, error) {
	return HashPassword(password), nil
}

// Verify recomputes the digest and compares it in constant time.
func (SHA256Hasher) Verify(password, digest string) bool {
	return CheckPasswordHash(password, digest)
}

// BcryptHasher produces salted bcrypt digests.
type BcryptHasher struct {
	Cost int
}

// Hash returns a bcrypt digest of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify compares password with a bcrypt digest.
func (BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// NewHasher returns the hasher registered under name, defaulting to SHA-256.
func NewHasher(name string, bcryptCost int) Hasher {
	if name == "bcrypt" {
		return BcryptHasher{Cost: bcryptCost}
	}
	return SHA256Hasher{}
}

// HashPassword hashes a plain password with SHA-256 and hex-encodes it.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash compares a plain password with a hex SHA-256 digest.
func CheckPasswordHash(password, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPassword(password)), []byte(hash)) == 1
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
