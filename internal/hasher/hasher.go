// Package hasher hashes and verifies user passwords with bcrypt.
package hasher

import "golang.org/x/crypto/bcrypt"

// Config holds the hashing parameters. It is built once at startup and
// passed to every component that needs to hash or verify credentials.
type Config struct {
	Cost int // bcrypt work factor
}

// DefaultConfig returns the configuration used when nothing is set explicitly.
func DefaultConfig() Config {
	return Config{Cost: bcrypt.DefaultCost}
}

// Hasher hashes and verifies passwords. It holds no mutable state and is
// safe for concurrent use.
type Hasher struct {
	cost int
}

// New creates a Hasher. Out of range costs are clamped to bcrypt's bounds.
func New(cfg Config) *Hasher {
	cost := cfg.Cost
	switch {
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the effective work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest.
// A malformed digest is treated as a mismatch.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
