// Package models contains database model definitions.
package models

// Setting represents a site configuration entry stored in the database.
// The key space is seeded once at startup; writes are upserts and rows are
// never deleted.
type Setting struct {
	Key   string `gorm:"primaryKey;size:100"`
	Value string `gorm:"default:''"`
}

// TableName keeps the original table name.
func (Setting) TableName() string { return "settings" }
