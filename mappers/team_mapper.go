// file: mappers/team_mapper.go
package mappers

import (
	"MYR/dto"
	"MYR/models"
	"MYR/services"
)

func MapTeamToItemResp(t models.Team) dto.TeamItemResp {
	return dto.TeamItemResp{
		ID:             t.ID,
		Name:           t.Name,
		LeaderID:       t.LeaderID,
		LeaderName:     t.Leader.Name,
		InvitationCode: t.InvitationCode,
	}
}

func MapMembers(members []models.TeamMember) []dto.MemberResp {
	out := make([]dto.MemberResp, 0, len(members))
	for i := range members {
		m := &members[i]
		out = append(out, dto.MemberResp{
			UserID:   m.UserID,
			Username: m.User.Username,
			Display:  m.User.DisplayName(),
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

func MapOverlap(teamID uint32, grid models.OverlapGrid, keys []string) dto.OverlapResp {
	days := make([]string, 0, models.DaysPerWeek)
	for _, d := range models.Days {
		days = append(days, string(d))
	}
	if keys == nil {
		keys = []string{}
	}
	return dto.OverlapResp{
		TeamID:        teamID,
		Days:          days,
		SlotsPerDay:   models.SlotsPerDay,
		Overlap:       grid.ByDay(),
		ConfirmedKeys: keys,
	}
}

func MapTeamView(v *services.TeamView) dto.TeamDetailResp {
	members := MapMembers(v.Members)
	return dto.TeamDetailResp{
		TeamItemResp: MapTeamToItemResp(*v.Team),
		Members:      members,
		TotalMembers: len(members),
		OverlapResp:  MapOverlap(v.Team.ID, v.Overlap, v.ConfirmedKeys),
	}
}
