package models

import (
	"time"
)

// Kritik represents a press or audience review.
type Kritik struct {
	ID    uint64 `gorm:"primaryKey"`
	Stadt string `gorm:"size:100;not null"`
	Text  string `gorm:"not null"`
	// Quelle is the optional source of the review ("Kronen Zeitung").
	Quelle string `gorm:"size:255"`
	// Datum is an optional free-text date as printed in the source.
	Datum string `gorm:"size:100"`
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
}

// TableName keeps the original German table name.
func (Kritik) TableName() string { return "kritiken" }
