// file: routes/router.go
package routes

import (
	"time"

	"MYR/controllers"
	"MYR/middlewares"
	"MYR/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

func SetupRouter(h *controllers.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		middlewares.RequestLogger(h.Log),
		middlewares.Recovery(h.Log),
		corsMiddleware(opts.AllowedOrigins),
		middlewares.NewRateLimiter(opts.RateLimitPerMin).Middleware(h.Log),
	)

	r.GET("/healthz", h.Health)

	auth := middlewares.JWTAuthMiddleware(h.Tokens, h.Accounts)
	adminOnly := middlewares.RoleAuthMiddleware(models.RoleAdmin)

	apiV1 := r.Group("/api/v1")
	{
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", h.Register)
			usersPublic.POST("/login", h.Login)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(auth)
		{
			usersAuth.GET("/search", h.SearchUsers)
		}
		me := apiV1.Group("/me")
		me.Use(auth)
		{
			me.GET("/schedule", h.GetMySchedule)
			me.PUT("/schedule", h.SaveMySchedule)
		}
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth, adminOnly)
		{
			adminRoutes.PUT("/users/:id/role", h.UpdateUserRole)
		}

		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(auth)
		{
			teamRoutes.GET("", h.ListMyTeams)
			teamRoutes.POST("", h.CreateTeam)
			teamRoutes.POST("/join", h.JoinTeam)
			teamRoutes.GET("/:id", h.GetTeamDetail)
			teamRoutes.DELETE("/:id", h.DeleteTeam)
			teamRoutes.POST("/:id/members", h.AddTeamMember)
			teamRoutes.POST("/:id/leave", h.LeaveTeam)
			teamRoutes.GET("/:id/overlap", h.GetTeamOverlap)
			teamRoutes.POST("/:id/confirm", h.ConfirmSlots)
			teamRoutes.DELETE("/:id/confirm/:slot", h.DeleteConfirmedSlot)
		}

		noticeRoutes := apiV1.Group("/notices")
		noticeRoutes.Use(auth)
		{
			noticeRoutes.GET("", h.ListNotices)
			noticeRoutes.GET("/:id", h.GetNotice)
			noticeRoutes.POST("", adminOnly, h.CreateNotice)
			noticeRoutes.DELETE("/:id", adminOnly, h.DeleteNotice)
		}

		// The .ics feed stays public so calendar apps can subscribe to it.
		apiV1.GET("/events.ics", h.ExportEvents)
		eventRoutes := apiV1.Group("/events")
		eventRoutes.Use(auth)
		{
			eventRoutes.GET("", h.ListEvents)
			eventRoutes.POST("", adminOnly, h.CreateEvent)
			eventRoutes.DELETE("/:id", adminOnly, h.DeleteEvent)
		}

		apiV1.GET("/sessions/:type", auth, h.GetSession)
		apiV1.POST("/instruments/:code/toggle", auth, adminOnly, h.ToggleInstrument)
		apiV1.POST("/reservations", auth, h.CreateReservation)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middlewares.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middlewares.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
