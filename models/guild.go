package models

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
)

// A Guild is a Discord server the bot records scans for.
// Scans made from the command line belong to no guild.
type Guild struct {
	ID   string `gorm:"primary_key"`
	Name string
}

func (g Guild) String() string {
	return fmt.Sprintf("Guild{id=%v, name=%v}", g.ID, g.Name)
}

// BeforeSave is executed just before a Guild is saved into the DB
func (g *Guild) BeforeSave() error {
	if g.ID == "" {
		return errors.New("missing guild ID")
	}
	if g.Name == "" {
		return errors.New("guild name can't be empty")
	}
	return nil
}

// EnsureGuild creates the guild if it isn't known yet. It reports whether
// a new record was created.
func EnsureGuild(db *gorm.DB, id, name string) (created bool, err error) {
	g := Guild{}
	if db.Where("id = ?", id).First(&g).RecordNotFound() {
		g.ID, g.Name = id, name
		if err := db.Create(&g).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
