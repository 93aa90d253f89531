// file: controllers/user_controller.go
package controllers

import (
	"errors"

	"MYR/dto"
	"MYR/models"
	"MYR/services"
	"MYR/utils"

	"github.com/gin-gonic/gin"
)

// --- public ---

func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	user, err := h.Accounts.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Cohort:   req.Cohort,
		Session:  req.Session,
	})
	if errors.Is(err, services.ErrConflict) {
		utils.Error(c, utils.CodeUserExists, "Username already taken")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "User registered successfully", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"display":  user.DisplayName(),
		"role":     user.Role,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	user, err := h.Accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	token, err := h.Tokens.GenerateToken(*user)
	if err != nil {
		utils.Error(c, utils.CodeTokenFailed, "Failed to issue token")
		return
	}
	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"display":  user.DisplayName(),
			"role":     user.Role,
		},
	})
}

// --- authenticated ---

func (h *Handler) SearchUsers(c *gin.Context) {
	results, err := h.Accounts.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", results)
}

func (h *Handler) GetMySchedule(c *gin.Context) {
	avail, err := h.Availability.Get(c.Request.Context(), actor(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", gin.H{"schedule": avail})
}

func (h *Handler) SaveMySchedule(c *gin.Context) {
	var req struct {
		Schedule models.WeeklyAvailability `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid schedule: "+err.Error())
		return
	}
	merged, err := h.Availability.Save(c.Request.Context(), actor(c).UserID, req.Schedule)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Schedule saved", gin.H{"schedule": merged})
}

// --- admin ---

func (h *Handler) UpdateUserRole(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	if err := h.Accounts.SetRole(c.Request.Context(), actor(c), userID, models.UserRole(req.Role)); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Role updated", gin.H{"id": userID, "role": req.Role})
}
