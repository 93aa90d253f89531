// file: controllers/handler.go
package controllers

import (
	"errors"
	"strconv"
	"time"

	"MYR/middlewares"
	"MYR/models"
	"MYR/services"
	"MYR/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries everything the HTTP layer talks to. main builds exactly one.
type Handler struct {
	DB           *gorm.DB
	Accounts     *services.AccountService
	Availability *services.AvailabilityService
	Teams        *services.TeamService
	Reservations *services.ReservationService
	Tokens       *utils.TokenIssuer
	Loc          *time.Location
	Log          *zap.Logger
}

func (h *Handler) location() *time.Location {
	if h.Loc == nil {
		return time.Local
	}
	return h.Loc
}

// actor reads what JWTAuthMiddleware stored.
func actor(c *gin.Context) services.Actor {
	var a services.Actor
	if v, ok := c.Get(middlewares.CtxUserID); ok {
		a.UserID, _ = v.(uint32)
	}
	if v, ok := c.Get(middlewares.CtxUserRole); ok {
		a.Role, _ = v.(models.UserRole)
	}
	return a
}

// paramID parses a positive uint32 path parameter, writing the error response itself.
func paramID(c *gin.Context, name string) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.Error(c, utils.CodeInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint32(id), true
}

// fail maps a service error onto the response envelope.
func (h *Handler) fail(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.Error(c, utils.CodeInvalidParam, ve.Error())
	case errors.Is(err, services.ErrBadCredentials):
		utils.Error(c, utils.CodeBadLogin, "Invalid username or password")
	case errors.Is(err, services.ErrLeaderCannotLeave):
		utils.Error(c, utils.CodeLeaderLeave, "The leader cannot leave; delete the team instead")
	case errors.Is(err, services.ErrNotFound):
		utils.Error(c, utils.CodeNotFound, "Not found")
	case errors.Is(err, services.ErrPermissionDenied):
		utils.Error(c, utils.CodeForbidden, "Permission denied")
	case errors.Is(err, services.ErrConflict):
		utils.Error(c, utils.CodeConflict, "Conflict")
	default:
		h.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middlewares.CtxRequestID)),
			zap.Error(err))
		utils.Error(c, utils.CodeInternal, "Internal server error")
	}
}

func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		utils.Error(c, utils.CodeInternal, "Database unavailable")
		return
	}
	utils.Success(c, "ok", gin.H{"time": time.Now().In(h.location())})
}
