package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only keys on the first 72 bytes of its input and the Go
// implementation rejects anything longer outright. Truncate up front so
// longer passwords hash and verify instead of erroring.
const maxPasswordBytes = 72

func truncateForBcrypt(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes a plaintext password with the configured cost. Each call
// embeds a fresh random salt in the output.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword(truncateForBcrypt(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against its stored hash.
// A mismatch returns (false, nil); an error is returned only when the stored
// hash itself is malformed.
func VerifyPassword(hashed, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), truncateForBcrypt(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
