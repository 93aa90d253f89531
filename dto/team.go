// file: dto/team.go
package dto

import "time"

// ========== requests ==========

type CreateTeamReq struct {
	Name string `json:"name" binding:"required"`
}

type JoinTeamReq struct {
	InvitationCode string `json:"invitation_code" binding:"required"`
}

type AddMemberReq struct {
	UserID uint32 `json:"user_id" binding:"required"`
}

// ConfirmSlotsReq carries "<day>_<index>" keys. Slots is accepted as an alias for
// older clients.
type ConfirmSlotsReq struct {
	Keys  []string `json:"keys"`
	Slots []string `json:"slots"`
}

// Normalize folds the alias into Keys.
func (r *ConfirmSlotsReq) Normalize() {
	if len(r.Keys) == 0 && len(r.Slots) > 0 {
		r.Keys = r.Slots
	}
	r.Slots = nil
}

// ========== responses ==========

type MemberResp struct {
	UserID   uint32    `json:"user_id"`
	Username string    `json:"username"`
	Display  string    `json:"display"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type TeamItemResp struct {
	ID             uint32 `json:"id"`
	Name           string `json:"name"`
	LeaderID       uint32 `json:"leader_id"`
	LeaderName     string `json:"leader_name"`
	InvitationCode string `json:"invitation_code"`
}

type OverlapResp struct {
	TeamID        uint32           `json:"team_id"`
	Days          []string         `json:"days"`
	SlotsPerDay   int              `json:"slots_per_day"`
	Overlap       map[string][]int `json:"overlap"`
	ConfirmedKeys []string         `json:"confirmed_keys"`
}

type TeamDetailResp struct {
	TeamItemResp
	Members      []MemberResp `json:"members"`
	TotalMembers int          `json:"total_members"`
	OverlapResp
}

type ConfirmResp struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
}
