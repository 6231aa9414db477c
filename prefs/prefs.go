// Package prefs persists the dashboard's remembered UI preferences (sort
// order, search text) in a small local SQLite key-value table. This is the
// only local persistence in the service; all domain data stays on the
// backend.
package prefs

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Fixed preference keys, carried over from the dashboard's storage names.
const (
	KeySortField     = "orders_sortField"
	KeySortDirection = "orders_sortDirection"
	KeySearchText    = "orders_searchText"
)

// Preference is one remembered key/value pair.
type Preference struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Store is a process-wide preference store backed by SQLite.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the preference database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open preference store")
	}
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, errors.Wrap(err, "migrate preference store")
	}
	return &Store{db: db}, nil
}

// Get returns the stored value for key, or fallback when nothing was saved.
func (s *Store) Get(key, fallback string) string {
	var pref Preference
	if err := s.db.First(&pref, "key = ?", key).Error; err != nil {
		return fallback
	}
	return pref.Value
}

// Set stores the value for key, overwriting any previous one.
func (s *Store) Set(key, value string) error {
	pref := Preference{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&pref).Error
	return errors.Wrapf(err, "save preference %s", key)
}
