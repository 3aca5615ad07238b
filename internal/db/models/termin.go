package models

import (
	"time"
)

// Termin represents a single tour date.
type Termin struct {
	ID uint64 `gorm:"primaryKey"`
	// Datum is the concert date as a strict YYYY-MM-DD string. The format is
	// enforced at the write path because upcoming-date filtering compares it
	// lexicographically against today.
	Datum string `gorm:"size:10;not null"`
	// Zeit is an optional free-text time ("19:30 Uhr").
	Zeit  string `gorm:"size:50"`
	Venue string `gorm:"size:255;not null"`
	Stadt string `gorm:"size:100;not null"`
	// Beschreibung is optional descriptive text for the concert.
	Beschreibung string
	// TicketLink is an optional URL to the ticket shop.
	TicketLink string `gorm:"column:ticket_link;size:500"`
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
}

// TableName keeps the original German table name.
func (Termin) TableName() string { return "termine" }
