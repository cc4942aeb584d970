package models

import (
	"github.com/jinzhu/gorm"
	// Registers the sqlite3 dialect.
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Open opens the sqlite database at path and migrates it.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
