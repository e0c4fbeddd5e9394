package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a staff login password using bcrypt at the default
// cost. Google-provisioned users get a random password through this same
// path so the column is never empty.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
