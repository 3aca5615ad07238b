// Package image provides CRUD operations for gallery image rows. The backing
// files in the upload directory are the caller's responsibility; on delete
// the caller removes the file before calling Delete here.
package image

import (
	"errors"

	"gorm.io/gorm"

	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
)

// descendingOrder lists newest images first; rows created in the same
// instant fall back to reverse insertion order via the id tie-break.
const descendingOrder = "created_at DESC, id DESC"

var (
	// ErrImageNotFound is returned when no image row matches the lookup.
	ErrImageNotFound = errors.New("image not found")
	// ErrFieldMissing is returned when filename or original name is empty.
	ErrFieldMissing = errors.New("image requires filename and original name")
	// ErrStoreNil is returned when the store handle is nil.
	ErrStoreNil = errors.New("store is nil")
)

// Fields holds the writable attributes of an image row.
type Fields struct {
	Filename     string
	OriginalName string
	Title        string
	Beschreibung string
}

// List retrieves images ordered descending by creation time. A limit <= 0
// means unbounded.
func List(st *store.Store, limit int) ([]models.Image, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	query := st.DB().Order(descendingOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var images []models.Image
	if result := query.Find(&images); result.Error != nil {
		return nil, result.Error
	}

	return images, nil
}

// GetByID retrieves a single image row.
func GetByID(st *store.Store, id uint64) (*models.Image, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	var img models.Image

	result := st.DB().First(&img, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}

		return nil, result.Error
	}

	return &img, nil
}

// Count returns the number of stored image rows.
func Count(st *store.Store) (int64, error) {
	if st == nil {
		return 0, ErrStoreNil
	}

	var count int64
	if result := st.DB().Model(&models.Image{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Add creates a new image row for an already stored file.
func Add(st *store.Store, f Fields) error {
	if st == nil {
		return ErrStoreNil
	}

	if f.Filename == "" || f.OriginalName == "" {
		return ErrFieldMissing
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Create(&models.Image{
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			Title:        f.Title,
			Beschreibung: f.Beschreibung,
		}).Error
	})
}

// Delete removes an image row. Deleting an unknown id is a no-op, not an
// error.
func Delete(st *store.Store, id uint64) error {
	if st == nil {
		return ErrStoreNil
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Delete(&models.Image{}, id).Error
	})
}
