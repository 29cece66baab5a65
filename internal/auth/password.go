package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds for patient accounts. The upper bound matches
// bcrypt's 72-byte input limit.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var (
	// ErrPasswordEmpty is returned when the password is empty
	ErrPasswordEmpty = errors.New("password cannot be empty")
	// ErrPasswordTooShort is returned when the password is below the minimum length
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's input limit
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// HashPassword validates a plaintext password against the account password
// policy and returns its bcrypt hash.
func HashPassword(password string) (string, error) {
	switch {
	case len(password) == 0:
		return "", ErrPasswordEmpty
	case len(password) < minPasswordLength:
		return "", ErrPasswordTooShort
	case len(password) > maxPasswordLength:
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. Empty inputs never match.
func VerifyPassword(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
