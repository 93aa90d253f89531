// file: controllers/session_controller.go
package controllers

import (
	"time"

	"MYR/dto"
	"MYR/services"
	"MYR/utils"

	"github.com/gin-gonic/gin"
)

// parseLocalTime accepts RFC 3339 or a datetime-local value in the club timezone.
func parseLocalTime(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.Reservations.SessionView(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Success", view)
}

func (h *Handler) ToggleInstrument(c *gin.Context) {
	code := c.Param("code")
	available, err := h.Reservations.Toggle(c.Request.Context(), actor(c), code)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Instrument updated", gin.H{"code": code, "is_available": available})
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req dto.ReserveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "Invalid parameters: "+err.Error())
		return
	}
	start, ok := parseLocalTime(req.Start, h.location())
	if !ok {
		utils.Error(c, utils.CodeInvalidParam, "Invalid start time")
		return
	}
	end, ok := parseLocalTime(req.End, h.location())
	if !ok {
		utils.Error(c, utils.CodeInvalidParam, "Invalid end time")
		return
	}
	res, err := h.Reservations.Reserve(c.Request.Context(), actor(c), services.ReserveInput{
		ItemCode: req.Item,
		Start:    start,
		End:      end,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Reservation created", res)
}
