package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces the credential hash stored on provider-created accounts.
type Hasher interface {
	HashPlaceholder(subjectID string) (string, error)
}

// BcryptHasher derives a non-usable credential from the provider subject.
// A random suffix is mixed in so the hash cannot be satisfied by anyone who
// learns the subject identifier.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) HashPlaceholder(subjectID string) (string, error) {
	if subjectID == "" {
		return "", errors.New("credentials: subject id is required")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credentials: random: %w", err)
	}

	// bcrypt only reads the first 72 bytes; keep the random part inside them.
	secret := base64.RawURLEncoding.EncodeToString(salt) + ":" + subjectID
	if len(secret) > 72 {
		secret = secret[:72]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("credentials: hash: %w", err)
	}
	return string(hash), nil
}
