// file: controllers/notice_controller.go
package controllers

import (
	"errors"
	"strconv"
	"time"

	"MYR/dto"
	"MYR/models"
	"MYR/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) ListNotices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var notices []models.Notice
	err := h.DB.WithContext(c.Request.Context()).
		Order("date_posted desc, id desc").
		Limit(limit).
		Find(&notices).Error
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", notices)
}

func (h *Handler) GetNotice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var notice models.Notice
	if err := h.DB.WithContext(c.Request.Context()).First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, utils.CodeNotFound, "Notice not found")
			return
		}
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", notice)
}

func (h *Handler) CreateNotice(c *gin.Context) {
	var req dto.CreateNoticeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	notice := models.Notice{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   actor(c).UserID,
		DatePosted: time.Now(),
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&notice).Error; err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Notice created", notice)
}

func (h *Handler) DeleteNotice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := h.DB.WithContext(c.Request.Context()).Delete(&models.Notice{}, id)
	if res.Error != nil {
		h.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, utils.CodeNotFound, "Notice not found")
		return
	}
	utils.Success(c, "Notice deleted", nil)
}
