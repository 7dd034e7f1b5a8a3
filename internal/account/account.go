package account

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("account email already exists")
)

// Account is the durable identity record. Email is the identity anchor;
// the linked provider fields are either both empty or both set.
type Account struct {
	ID                      string `gorm:"type:uuid;primaryKey"`
	Email                   string `gorm:"uniqueIndex;not null"`
	Name                    string `gorm:"not null"`
	AvatarURL               string `gorm:"not null"`
	CredentialHash          string `gorm:"not null"`
	LinkedProvider          string `gorm:"not null"`
	LinkedProviderSubjectID string `gorm:"not null"`
	TokenVersion            int    `gorm:"not null"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (Account) TableName() string { return "accounts" }

// IsLinked reports whether an external identity is attached.
func (a *Account) IsLinked() bool {
	return a.LinkedProviderSubjectID != ""
}

// Link identifies an external identity.
type Link struct {
	Provider  string
	SubjectID string
}

// Update describes a profile refresh. Empty Name or AvatarURL leave the
// stored value untouched. Link is applied only if the row has no link yet.
type Update struct {
	Name      string
	AvatarURL string
	Link      *Link
}

func (u Update) IsEmpty() bool {
	return u.Name == "" && u.AvatarURL == "" && u.Link == nil
}

// Store is the repository the identity subsystem depends on.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)

	// Create inserts a new account. It returns ErrDuplicateEmail when the
	// email unique index rejects the row.
	Create(ctx context.Context, a *Account) error

	// Update applies u atomically and returns the stored row.
	Update(ctx context.Context, id string, u Update) (*Account, error)

	// IncrementTokenVersion invalidates every refresh token issued so far.
	IncrementTokenVersion(ctx context.Context, id string) (*Account, error)
}

// NormalizeEmail is the canonical form used for lookups and writes.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
