package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password an admin may assign.
const MinPasswordLength = 6

// ErrPasswordTooShort is returned when a password fails the length rule.
var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

// PasswordHasher applies the password policy and bcrypt hashing.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is zero.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

// CheckPolicy reports whether plain may be stored as a password.
func CheckPolicy(plain string) error {
	if len(plain) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Hash checks the policy and returns the bcrypt hash of plain.
func (h PasswordHasher) Hash(plain string) (string, error) {
	if err := CheckPolicy(plain); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// PasswordMatches reports whether plain matches hashed. An account without a
// stored hash never matches.
func PasswordMatches(hashed, plain string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
