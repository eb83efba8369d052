package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

// Parameters of the scrypt hashes written by the previous backend.
const (
	legacyPrefix = "scrypt"
	legacyN      = 16384
	legacyR      = 8
	legacyP      = 1
	legacyKeyLen = 64
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword accepts bcrypt hashes and legacy "scrypt$<salt>$<hex>" hashes.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	if strings.HasPrefix(hash, legacyPrefix+"$") {
		return checkLegacy(hash, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether the stored hash is in the legacy format.
func NeedsRehash(hash string) bool {
	return strings.HasPrefix(hash, legacyPrefix+"$")
}

func checkLegacy(hash, password string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 3 || parts[0] != legacyPrefix {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != legacyKeyLen {
		return false
	}
	// The salt is used as the literal hex text, not its decoded bytes.
	got, err := scrypt.Key([]byte(password), []byte(parts[1]), legacyN, legacyR, legacyP, legacyKeyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
