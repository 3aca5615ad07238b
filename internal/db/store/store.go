// Package store owns the embedded database file. The live database is an
// in-memory SQLite instance; the on-disk file is a full snapshot of it,
// loaded once at startup and rewritten wholesale after every mutation.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/buehnenwerk/udo-story/internal/db/models"
)

// tables lists the snapshot tables in restore order.
var tables = []string{"admin", "termine", "images", "kritiken", "settings"}

// Store is the handle to the embedded database. All mutating access must go
// through Mutate so that the in-memory change and the snapshot write-back
// form one critical section.
type Store struct {
	db   *gorm.DB
	mu   sync.Mutex
	path string
}

// Open loads the store from the snapshot file at path if present, otherwise
// starts empty. It ensures all schemas exist, seeds the default admin account
// and settings, and writes an initial snapshot so a fresh store exists on
// disk before the first request.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory database")
	}

	// An in-memory SQLite database exists per connection; cap the pool at a
	// single connection so every session sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access sql.DB")
	}

	sqlDB.SetMaxOpenConns(1)

	// create-if-absent, never destructive
	if err = db.AutoMigrate(
		&models.Admin{},
		&models.Termin{},
		&models.Image{},
		&models.Kritik{},
		&models.Setting{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	s := &Store{db: db, path: path}

	if _, statErr := os.Stat(path); statErr == nil {
		if err = s.restore(); err != nil {
			return nil, err
		}

		log.Info().Str("path", path).Msg("database snapshot loaded")
	} else if !os.IsNotExist(statErr) {
		return nil, errors.Wrap(statErr, "failed to stat database snapshot")
	}

	if err = seed(db); err != nil {
		return nil, err
	}

	if err = s.persistLocked(); err != nil {
		return nil, err
	}

	return s, nil
}

// DB returns the underlying gorm handle for read-only queries. Mutations must
// go through Mutate instead.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Mutate applies fn inside a database transaction and then persists the full
// store state to the snapshot file. The whole sequence holds the store mutex
// so no two mutations can interleave their write-back.
func (s *Store) Mutate(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Transaction(fn); err != nil {
		return err //nolint:wrapcheck
	}

	return s.persistLocked()
}

// Persist serializes the full current store state to the snapshot file.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistLocked()
}

// Close releases the underlying database connection. The snapshot file is
// already current because every mutation persisted synchronously.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access sql.DB")
	}

	return sqlDB.Close() //nolint:wrapcheck
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// persistLocked writes the serialized database to a temporary file next to
// the snapshot path and atomically replaces the snapshot with it. Callers
// must hold s.mu. A failure propagates so the caller knows the mutation is
// not durable.
func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil { //nolint: mnd
		return errors.Wrap(err, "failed to create database directory")
	}

	tmp := fmt.Sprintf("%s.tmp%d", s.path, time.Now().UnixNano())

	// VACUUM INTO refuses to overwrite an existing file.
	_ = os.Remove(tmp)

	if err := s.db.Exec("VACUUM INTO ?", tmp).Error; err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to serialize database snapshot")
	}

	if err := atomic.ReplaceFile(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to replace database snapshot")
	}

	return nil
}

// restore copies every known table from the snapshot file into the live
// in-memory database. Columns are matched by name so a snapshot written by
// an older schema still loads after a migration added columns.
func (s *Store) restore() error {
	if err := s.db.Exec("ATTACH DATABASE ? AS snap", s.path).Error; err != nil {
		return errors.Wrap(err, "failed to attach database snapshot")
	}

	defer func() {
		if err := s.db.Exec("DETACH DATABASE snap").Error; err != nil {
			log.Error().Err(err).Msg("failed to detach database snapshot")
		}
	}()

	for _, table := range tables {
		var present int64
		if err := s.db.Raw(
			"SELECT count(*) FROM snap.sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&present).Error; err != nil {
			return errors.Wrapf(err, "failed to inspect snapshot table %s", table)
		}

		if present == 0 {
			continue
		}

		cols, err := commonColumns(s.db, table)
		if err != nil {
			return err
		}

		if len(cols) == 0 {
			continue
		}

		colList := strings.Join(cols, ", ")

		if err := s.db.Exec(fmt.Sprintf(
			"INSERT INTO main.%s (%s) SELECT %s FROM snap.%s", table, colList, colList, table,
		)).Error; err != nil {
			return errors.Wrapf(err, "failed to restore table %s", table)
		}
	}

	return nil
}

// commonColumns returns the column names present in both the live and the
// snapshot variant of a table, in live-table order.
func commonColumns(db *gorm.DB, table string) ([]string, error) {
	type columnInfo struct {
		Name string
	}

	var live, snap []columnInfo

	if err := db.Raw(fmt.Sprintf("PRAGMA main.table_info(%s)", table)).Scan(&live).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to read live schema of %s", table)
	}

	if err := db.Raw(fmt.Sprintf("PRAGMA snap.table_info(%s)", table)).Scan(&snap).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot schema of %s", table)
	}

	inSnap := make(map[string]bool, len(snap))
	for _, c := range snap {
		inSnap[c.Name] = true
	}

	var cols []string

	for _, c := range live {
		if inSnap[c.Name] {
			cols = append(cols, c.Name)
		}
	}

	return cols, nil
}
