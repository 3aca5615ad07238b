// Package setting provides read and upsert operations for site settings.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
)

const (
	keyQueryPattern = "key = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to read/write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrStoreNil is returned when the store handle is nil.
	ErrStoreNil = errors.New("store is nil")
)

// Get retrieves a setting value by its key.
func Get(st *store.Store, key string) (string, error) {
	if st == nil {
		return "", ErrStoreNil
	}

	if key == "" {
		return "", ErrSettingKeyEmpty
	}

	var setting models.Setting

	result := st.DB().Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}

		return "", result.Error
	}

	return setting.Value, nil
}

// All retrieves every setting as a key/value map. The settings set is small
// and fixed, so there is no pagination.
func All(st *store.Store) (map[string]string, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	var settings []models.Setting
	if result := st.DB().Find(&settings); result.Error != nil {
		return nil, result.Error
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}

// Set creates or updates a setting by key (upsert operation). Keys outside
// the seeded default set are accepted; the store does not reject unknown
// keys. Setting the same value twice is idempotent.
func Set(st *store.Store, key, value string) error {
	if st == nil {
		return ErrStoreNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&models.Setting{Key: key, Value: value}).Error
	})
}
