// file: models/confirmed_slot.go
package models

import "time"

// ConfirmedSlot marks a weekly cell a team has committed to.
type ConfirmedSlot struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	TeamID    uint32    `gorm:"uniqueIndex:unique_team_day_slot;not null" json:"team_id"`
	Day       Day       `gorm:"uniqueIndex:unique_team_day_slot;size:3;not null" json:"day"`
	SlotIndex int       `gorm:"uniqueIndex:unique_team_day_slot;not null" json:"slot_index"`
	CreatedAt time.Time `json:"created_at"`
}

func (ConfirmedSlot) TableName() string {
	return "myr_confirmed_slot"
}

func (c ConfirmedSlot) Slot() Slot {
	return Slot{Day: c.Day, Index: c.SlotIndex}
}
