// file: controllers/team_controller.go
package controllers

import (
	"MYR/dto"
	"MYR/mappers"
	"MYR/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	team, err := h.Teams.Create(c.Request.Context(), actor(c), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Team created successfully", mappers.MapTeamToItemResp(*team))
}

func (h *Handler) ListMyTeams(c *gin.Context) {
	teams, err := h.Teams.ListMine(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]dto.TeamItemResp, 0, len(teams))
	for _, t := range teams {
		items = append(items, mappers.MapTeamToItemResp(t))
	}
	utils.Success(c, "Success", items)
}

func (h *Handler) GetTeamDetail(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	view, err := h.Teams.View(c.Request.Context(), actor(c), teamID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", mappers.MapTeamView(view))
}

func (h *Handler) JoinTeam(c *gin.Context) {
	var req dto.JoinTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	team, err := h.Teams.Join(c.Request.Context(), actor(c), req.InvitationCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Joined team successfully", mappers.MapTeamToItemResp(*team))
}

func (h *Handler) AddTeamMember(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.AddMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	added, err := h.Teams.AddMember(c.Request.Context(), actor(c), teamID, req.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "Member added"
	if !added {
		msg = "Already a member"
	}
	utils.Success(c, msg, gin.H{"team_id": teamID, "user_id": req.UserID, "added": added})
}

func (h *Handler) LeaveTeam(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Teams.Leave(c.Request.Context(), actor(c), teamID); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Left team", nil)
}

func (h *Handler) DeleteTeam(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Teams.Delete(c.Request.Context(), actor(c), teamID); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Team deleted", nil)
}

// --- overlap ---

func (h *Handler) GetTeamOverlap(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	grid, keys, err := h.Teams.Overlap(c.Request.Context(), actor(c), teamID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", mappers.MapOverlap(teamID, grid, keys))
}

func (h *Handler) ConfirmSlots(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ConfirmSlotsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	req.Normalize()
	res, err := h.Teams.Confirm(c.Request.Context(), actor(c), teamID, req.Keys)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Slots confirmed", dto.ConfirmResp{Requested: res.Requested, Created: res.Created})
}

func (h *Handler) DeleteConfirmedSlot(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	key := c.Param("slot")
	if err := h.Teams.Unconfirm(c.Request.Context(), actor(c), teamID, key); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Confirmation removed", gin.H{"team_id": teamID, "key": key})
}
