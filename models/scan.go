package models

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/jinzhu/gorm"
)

// A Scan records the extrema found in an image.
type Scan struct {
	gorm.Model
	GuildID  string `gorm:"index"`
	Source   string `gorm:"index"`
	Rows     int
	Cols     int
	Channels int
	// Exact is false when locations came from the approximate scanner.
	Exact   bool
	Extrema []ChannelExtremum
}

// ChannelExtremum holds the extrema of one channel of a Scan.
type ChannelExtremum struct {
	ID      uint `gorm:"primary_key"`
	ScanID  uint `gorm:"index"`
	Channel int
	Min     uint8
	Max     uint8
	MinX    int
	MinY    int
	MaxX    int
	MaxY    int
}

// TableName overrides gorm's pluralization.
func (ChannelExtremum) TableName() string {
	return "channel_extrema"
}

// NewScan builds a Scan record from a scanned buffer and its extrema.
func NewScan(source, guildID string, m *imp.Mat, e *imp.Extrema, exact bool) Scan {
	s := Scan{
		GuildID:  guildID,
		Source:   source,
		Rows:     m.Rows,
		Cols:     m.Cols,
		Channels: m.Channels,
		Exact:    exact,
		Extrema:  make([]ChannelExtremum, e.Channels()),
	}
	for i := range s.Extrema {
		s.Extrema[i] = ChannelExtremum{
			Channel: i,
			Min:     e.MinValues[i],
			Max:     e.MaxValues[i],
			MinX:    e.MinLocs[i].X,
			MinY:    e.MinLocs[i].Y,
			MaxX:    e.MaxLocs[i].X,
			MaxY:    e.MaxLocs[i].Y,
		}
	}
	return s
}

// BeforeSave is executed just before a Scan is saved into the DB
func (s *Scan) BeforeSave() error {
	if s.Source == "" {
		return errors.New("missing scan source")
	}
	if len(s.Extrema) != s.Channels {
		return fmt.Errorf("scan has %d channels but %d extrema", s.Channels, len(s.Extrema))
	}
	return nil
}

// Create creates a new scan and its extrema in the DB
func (s *Scan) Create(db *gorm.DB) error {
	return db.Create(s).Error
}

// Result rebuilds the extrema of the scan.
func (s Scan) Result() *imp.Extrema {
	ext := append([]ChannelExtremum(nil), s.Extrema...)
	sort.Slice(ext, func(i, j int) bool { return ext[i].Channel < ext[j].Channel })

	e := &imp.Extrema{
		MinValues: make([]uint8, len(ext)),
		MaxValues: make([]uint8, len(ext)),
		MinLocs:   make([]image.Point, len(ext)),
		MaxLocs:   make([]image.Point, len(ext)),
	}
	for i, c := range ext {
		e.MinValues[i], e.MaxValues[i] = c.Min, c.Max
		e.MinLocs[i] = image.Point{X: c.MinX, Y: c.MinY}
		e.MaxLocs[i] = image.Point{X: c.MaxX, Y: c.MaxY}
	}
	return e
}

func (s Scan) String() string {
	return fmt.Sprintf("%s (%dx%d, %d channel(s))", s.Source, s.Cols, s.Rows, s.Channels)
}

func preloadExtrema(db *gorm.DB) *gorm.DB {
	return db.Preload("Extrema", func(db *gorm.DB) *gorm.DB {
		return db.Order("channel")
	})
}

// ListScans returns the latest scans of given guild, newest first.
// A limit <= 0 means no limit.
func ListScans(db *gorm.DB, guildID string, limit int) (scans []Scan, err error) {
	q := preloadExtrema(db).Where("guild_id = ?", guildID).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err = q.Find(&scans).Error
	return
}

// ListSources returns the distinct image names scanned in given guild.
func ListSources(db *gorm.DB, guildID string) (sources []string, err error) {
	err = db.Model(&Scan{}).Where("guild_id = ?", guildID).Order("source").Pluck("DISTINCT source", &sources).Error
	return
}

// FindLatestScan finds the most recent scan of an image in given guild.
func FindLatestScan(db *gorm.DB, guildID, source string) (Scan, error) {
	s := Scan{}
	err := preloadExtrema(db).
		Where("guild_id = ?", guildID).
		Where("source = ?", source).
		Order("id desc").
		First(&s).Error
	return s, err
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Guild{},
		&Scan{},
		&ChannelExtremum{},
	).Error
}
