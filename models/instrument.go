// file: models/instrument.go
package models

import "time"

type Instrument struct {
	ID          uint32      `gorm:"primarykey" json:"id"`
	Code        string      `gorm:"size:20;unique;not null" json:"code"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Session     UserSession `gorm:"size:20;not null;index" json:"session"`
	Color       string      `gorm:"size:16" json:"color"`
	IsAvailable bool        `gorm:"not null;default:true" json:"is_available"`
}

func (Instrument) TableName() string {
	return "myr_instrument"
}

type InstrumentReservation struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	UserID    uint32    `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ItemCode  string    `gorm:"size:20;not null;index" json:"item_code"`
	StartAt   time.Time `gorm:"not null" json:"start_at"`
	EndAt     time.Time `gorm:"not null;index" json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (InstrumentReservation) TableName() string {
	return "myr_instrument_reservation"
}

// Overlaps is the half-open interval test used for double-booking.
func (r InstrumentReservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && r.EndAt.After(start)
}
