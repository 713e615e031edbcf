package specification

import (
	"time"

	"gorm.io/gorm"
)

// OnDate keeps turns whose timestamp falls on the given calendar day (in the day's location).
type OnDate struct {
	Day time.Time
}

func (s OnDate) Apply(db *gorm.DB) *gorm.DB {
	start := time.Date(s.Day.Year(), s.Day.Month(), s.Day.Day(), 0, 0, 0, 0, s.Day.Location())
	return db.Where("timestamp >= ? AND timestamp < ?", start, start.AddDate(0, 0, 1))
}
