// file: controllers/event_controller.go
package controllers

import (
	"net/http"
	"time"

	"MYR/dto"
	"MYR/models"
	"MYR/services"
	"MYR/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// eventWindow reads ?from=&to= as dates; the default is 30 days back to 180 ahead.
func (h *Handler) eventWindow(c *gin.Context) (time.Time, time.Time, bool) {
	loc := h.location()
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	from, to := today.AddDate(0, 0, -30), today.AddDate(0, 0, 180)

	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			utils.Error(c, utils.CodeInvalidParam, "from must be YYYY-MM-DD")
			return from, to, false
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			utils.Error(c, utils.CodeInvalidParam, "to must be YYYY-MM-DD")
			return from, to, false
		}
		// inclusive
		to = t.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		utils.Error(c, utils.CodeInvalidParam, "from must be before to")
		return from, to, false
	}
	return from, to, true
}

func (h *Handler) ListEvents(c *gin.Context) {
	from, to, ok := h.eventWindow(c)
	if !ok {
		return
	}
	var events []models.ClubEvent
	if err := h.DB.WithContext(c.Request.Context()).Order("start_date asc, id asc").Find(&events).Error; err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", gin.H{
		"from":        from.Format(dateLayout),
		"to":          to.AddDate(0, 0, -1).Format(dateLayout),
		"occurrences": services.ExpandEvents(events, from, to, h.location()),
	})
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	loc := h.location()
	start, err := time.ParseInLocation(dateLayout, req.StartDate, loc)
	if err != nil {
		utils.Error(c, utils.CodeInvalidParam, "start_date must be YYYY-MM-DD")
		return
	}
	end := start
	if req.EndDate != "" {
		if end, err = time.ParseInLocation(dateLayout, req.EndDate, loc); err != nil {
			utils.Error(c, utils.CodeInvalidParam, "end_date must be YYYY-MM-DD")
			return
		}
	}
	event := models.ClubEvent{
		Title:     req.Title,
		StartDate: start,
		EndDate:   end,
		RRule:     req.RRule,
	}
	if err := services.ValidateEvent(&event); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&event).Error; err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Event created", event)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := h.DB.WithContext(c.Request.Context()).Delete(&models.ClubEvent{}, id)
	if res.Error != nil {
		h.fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, utils.CodeNotFound, "Event not found")
		return
	}
	utils.Success(c, "Event deleted", nil)
}

// ExportEvents serves the whole club calendar as an .ics feed.
func (h *Handler) ExportEvents(c *gin.Context) {
	var events []models.ClubEvent
	if err := h.DB.WithContext(c.Request.Context()).Order("start_date asc, id asc").Find(&events).Error; err != nil {
		h.fail(c, err)
		return
	}
	body := services.BuildICS(events, h.location(), time.Now())
	c.Header("Content-Disposition", `attachment; filename="club.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
