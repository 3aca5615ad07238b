package models

import (
	"time"
)

// Image represents a gallery image row. The actual file lives in the upload
// directory under Filename; deleting a row without removing the file first
// leaves an orphaned file behind, so callers remove the file before the row.
type Image struct {
	ID uint64 `gorm:"primaryKey"`
	// Filename is the server-generated name of the stored file.
	Filename string `gorm:"size:255;not null"`
	// OriginalName is the client-supplied name of the uploaded file.
	OriginalName string `gorm:"column:originalname;size:255;not null"`
	// Title is an optional caption.
	Title string `gorm:"size:255"`
	// Beschreibung is an optional description.
	Beschreibung string
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
}

// TableName keeps the original table name.
func (Image) TableName() string { return "images" }
