// Package admin provides lookups and the password update for admin accounts.
package admin

import (
	"errors"

	"gorm.io/gorm"

	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
)

var (
	// ErrAdminNotFound is returned when no admin account matches the lookup.
	ErrAdminNotFound = errors.New("admin account not found")
	// ErrUsernameEmpty is returned when looking up an admin with an empty username.
	ErrUsernameEmpty = errors.New("admin username cannot be empty")
	// ErrStoreNil is returned when the store handle is nil.
	ErrStoreNil = errors.New("store is nil")
)

// GetByUsername retrieves an admin account by username. Absence is reported
// through ErrAdminNotFound, never a crash.
func GetByUsername(st *store.Store, username string) (*models.Admin, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	if username == "" {
		return nil, ErrUsernameEmpty
	}

	var admin models.Admin

	result := st.DB().Where("username = ?", username).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}

		return nil, result.Error
	}

	return &admin, nil
}

// GetByID retrieves an admin account by its ID.
func GetByID(st *store.Store, id uint64) (*models.Admin, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	var admin models.Admin

	result := st.DB().First(&admin, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}

		return nil, result.Error
	}

	return &admin, nil
}

// UpdatePassword overwrites the stored password hash of an admin account.
// The hash format is the caller's responsibility.
func UpdatePassword(st *store.Store, id uint64, hash string) error {
	if st == nil {
		return ErrStoreNil
	}

	return st.Mutate(func(tx *gorm.DB) error {
		result := tx.Model(&models.Admin{}).Where("id = ?", id).Update("password", hash)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrAdminNotFound
		}

		return nil
	})
}
