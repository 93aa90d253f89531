// file: models/team.go
package models

import (
	"time"
)

type Team struct {
	ID             uint32          `gorm:"primarykey" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	LeaderID       uint32          `gorm:"not null;index" json:"leader_id"`
	Leader         User            `gorm:"foreignKey:LeaderID" json:"leader"`
	InvitationCode string          `gorm:"size:20;unique;not null" json:"invitation_code"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Members        []TeamMember    `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members"`
	ConfirmedSlots []ConfirmedSlot `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"confirmed_slots"`
}

func (Team) TableName() string {
	return "myr_team"
}
