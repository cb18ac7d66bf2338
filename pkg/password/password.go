package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used for author passwords
const DefaultCost = 10

// Hasher hashes and verifies plaintext passwords
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt.
// Every call to Hash generates a new salt, so hashing the same
// plaintext twice yields two different values.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost.
// Costs outside bcrypt's accepted range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash.
// bcrypt.CompareHashAndPassword is constant-time.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	// A malformed stored hash is reported as a mismatch.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
