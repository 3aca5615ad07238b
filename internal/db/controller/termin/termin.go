// Package termin provides CRUD operations for tour dates.
package termin

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/buehnenwerk/udo-story/internal/db/models"
	"github.com/buehnenwerk/udo-story/internal/db/store"
)

const (
	// DefaultUpcomingLimit caps Upcoming when the caller passes no limit.
	DefaultUpcomingLimit = 100

	// DateLayout is the strict date format of Termin.Datum. Filtering for
	// upcoming dates compares date strings lexicographically, which is only
	// correct with this fixed layout, so the format is enforced on every
	// write.
	DateLayout = "2006-01-02"

	// ascendingOrder is the canonical tour date ordering; rows with the same
	// date keep insertion order via the id tie-break.
	ascendingOrder = "datum ASC, id ASC"
)

var (
	// ErrInvalidDate is returned when a date is not a valid YYYY-MM-DD string.
	ErrInvalidDate = errors.New("termin date must be a valid YYYY-MM-DD date")
	// ErrFieldMissing is returned when a required field (datum, venue, stadt) is empty.
	ErrFieldMissing = errors.New("termin requires datum, venue and stadt")
	// ErrStoreNil is returned when the store handle is nil.
	ErrStoreNil = errors.New("store is nil")
)

// Fields holds the writable attributes of a tour date.
type Fields struct {
	Datum        string
	Zeit         string
	Venue        string
	Stadt        string
	Beschreibung string
	TicketLink   string
}

func (f Fields) validate() error {
	if f.Datum == "" || f.Venue == "" || f.Stadt == "" {
		return ErrFieldMissing
	}

	parsed, err := time.Parse(DateLayout, f.Datum)
	if err != nil || parsed.Format(DateLayout) != f.Datum {
		return ErrInvalidDate
	}

	return nil
}

// All retrieves every tour date ordered ascending by date.
func All(st *store.Store) ([]models.Termin, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	var termine []models.Termin
	if result := st.DB().Order(ascendingOrder).Find(&termine); result.Error != nil {
		return nil, result.Error
	}

	return termine, nil
}

// Upcoming retrieves tour dates from today onwards, ordered ascending by
// date and capped at limit (DefaultUpcomingLimit when limit <= 0).
func Upcoming(st *store.Store, limit int) ([]models.Termin, error) {
	if st == nil {
		return nil, ErrStoreNil
	}

	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	today := time.Now().Format(DateLayout)

	var termine []models.Termin

	result := st.DB().
		Where("datum >= ?", today).
		Order(ascendingOrder).
		Limit(limit).
		Find(&termine)
	if result.Error != nil {
		return nil, result.Error
	}

	return termine, nil
}

// Count returns the number of stored tour dates.
func Count(st *store.Store) (int64, error) {
	if st == nil {
		return 0, ErrStoreNil
	}

	var count int64
	if result := st.DB().Model(&models.Termin{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Add creates a new tour date. Duplicate date+venue combinations are
// permitted.
func Add(st *store.Store, f Fields) error {
	if st == nil {
		return ErrStoreNil
	}

	if err := f.validate(); err != nil {
		return err
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Create(&models.Termin{
			Datum:        f.Datum,
			Zeit:         f.Zeit,
			Venue:        f.Venue,
			Stadt:        f.Stadt,
			Beschreibung: f.Beschreibung,
			TicketLink:   f.TicketLink,
		}).Error
	})
}

// Update overwrites all writable fields of a tour date. Updating an unknown
// id is a no-op.
func Update(st *store.Store, id uint64, f Fields) error {
	if st == nil {
		return ErrStoreNil
	}

	if err := f.validate(); err != nil {
		return err
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Model(&models.Termin{}).Where("id = ?", id).Updates(map[string]interface{}{
			"datum":        f.Datum,
			"zeit":         f.Zeit,
			"venue":        f.Venue,
			"stadt":        f.Stadt,
			"beschreibung": f.Beschreibung,
			"ticket_link":  f.TicketLink,
		}).Error
	})
}

// Delete removes a tour date. Deleting an unknown id is a no-op, not an
// error.
func Delete(st *store.Store, id uint64) error {
	if st == nil {
		return ErrStoreNil
	}

	return st.Mutate(func(tx *gorm.DB) error {
		return tx.Delete(&models.Termin{}, id).Error
	})
}
