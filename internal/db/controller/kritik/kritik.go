// Package kritik provides CRUD operations for reviews.
package kritik

import (
	"errors"

	"gorm.io/gorm"

	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
)

// descendingOrder lists newest reviews first with an id tie-break for
// deterministic ordering.
const descendingOrder = "created_at DESC, id DESC"

var (
	// ErrFieldMissing is returned when stadt or text is empty.
	ErrFieldMissing = errors.New("kritik requires stadt and text")
	// ErrStoreNil is returned when the store handle is nil.
	ErrStoreNil = errors.New("store is nil")
)

// Fields holds the writable attributes of a review.
type Fields struct {
	Stadt  string
	Text   string
	Quelle string
	Datum  string
}

// All retrieves every review ordered descending by creation time.
func All(st *store.Store) ([]models.Kritik, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	var kritiken []models.Kritik
	if result := st.DB().Order(descendingOrder).Find(&kritiken); result.Error != nil {
		return nil, result.Error
	}

	return kritiken, nil
}

// Count returns the number of stored reviews.
func Count(st *store.Store) (int64, error) {
	if st == nil {
		return 0, ErrStoreNil
	}

	var count int64
	if result := st.DB().Model(&models.Kritik{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Add creates a new review.
func Add(st *store.Store, f Fields) error {
	if st == nil {
		return ErrStoreNil
	}

	if f.Stadt == "" || f.Text == "" {
		return ErrFieldMissing
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Create(&models.Kritik{
			Stadt:  f.Stadt,
			Text:   f.Text,
			Quelle: f.Quelle,
			Datum:  f.Datum,
		}).Error
	})
}

// Delete removes a review. Deleting an unknown id is a no-op, not an error.
func Delete(st *store.Store, id uint64) error {
	if st == nil {
		return ErrStoreNil
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Delete(&models.Kritik{}, id).Error
	})
}
