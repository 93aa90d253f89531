// file: models/team_member.go
package models

import "time"

type TeamMemberRole string

const (
	TeamRoleLeader TeamMemberRole = "leader"
	TeamRoleMember TeamMemberRole = "member"
)

type TeamMember struct {
	ID       uint32         `gorm:"primarykey"`
	TeamID   uint32         `gorm:"uniqueIndex:unique_team_user;not null"`
	UserID   uint32         `gorm:"uniqueIndex:unique_team_user;not null;index"`
	User     User           `gorm:"foreignKey:UserID"`
	Role     TeamMemberRole `gorm:"size:20;default:'member'"`
	JoinedAt time.Time
}

func (TeamMember) TableName() string {
	return "myr_team_members"
}
