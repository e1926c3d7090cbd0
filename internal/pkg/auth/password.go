package auth

import (
	"github.com/waheedridwan/geopoints/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the weakest password the API will accept.
const MinPasswordLength = 8

// Hasher wraps bcrypt with a configurable cost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Costs outside bcrypt's valid range fall back
// to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash validates the password policy and returns a bcrypt hash.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.NewValidation("password must be at least %d characters", MinPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.NewInternal(err)
	}
	return string(hashed), nil
}

// Verify reports whether the plain password matches the stored hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
