package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pq SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := s.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		Take(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*Account, error) {
	var a Account
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *GormStore) Create(ctx context.Context, a *Account) error {
	if a.ID == "" {
		return errors.New("account: id is required")
	}
	if (a.LinkedProvider == "") != (a.LinkedProviderSubjectID == "") {
		return errors.New("account: link provider and subject must be set together")
	}
	a.Email = NormalizeEmail(a.Email)

	err := s.db.WithContext(ctx).Create(a).Error
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("account: create: %w", err)
	}
	return nil
}

// Update writes the profile fields and, when requested, the link in a single
// statement. The link columns only change while the stored subject is empty,
// so a concurrent linker can never replace an existing link.
func (s *GormStore) Update(ctx context.Context, id string, u Update) (*Account, error) {
	values := map[string]any{}
	if u.Name != "" {
		values["name"] = u.Name
	}
	if u.AvatarURL != "" {
		values["avatar_url"] = u.AvatarURL
	}
	if u.Link != nil {
		if u.Link.Provider == "" || u.Link.SubjectID == "" {
			return nil, errors.New("account: link provider and subject must be set together")
		}
		values["linked_provider"] = gorm.Expr(
			"CASE WHEN linked_provider_subject_id = '' THEN ? ELSE linked_provider END",
			u.Link.Provider,
		)
		values["linked_provider_subject_id"] = gorm.Expr(
			"CASE WHEN linked_provider_subject_id = '' THEN ? ELSE linked_provider_subject_id END",
			u.Link.SubjectID,
		)
	}

	var out Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(values) > 0 {
			res := tx.Model(&Account{}).Where("id = ?", id).Updates(values)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return tx.Where("id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (s *GormStore) IncrementTokenVersion(ctx context.Context, id string) (*Account, error) {
	var out Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Account{}).
			Where("id = ?", id).
			UpdateColumn("token_version", gorm.Expr("token_version + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("account: %w", err)
}

// isUniqueViolation recognizes both gorm-translated errors (sqlite, pgx) and
// raw lib/pq errors, which the postgres dialector does not translate.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
