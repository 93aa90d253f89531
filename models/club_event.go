// file: models/club_event.go
package models

import (
	"strings"
	"time"
)

// ClubEvent is an entry on the club calendar. StartDate and EndDate are whole days,
// EndDate inclusive.
type ClubEvent struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	RRule     string    `gorm:"column:rrule;size:255" json:"rrule,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ClubEvent) TableName() string {
	return "myr_club_event"
}

// IsPerformance marks concerts, which the calendar highlights.
func (e ClubEvent) IsPerformance() bool {
	return strings.Contains(e.Title, "공연")
}
