package server

import (
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/config"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/handlers"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/metrics"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func NewRouter(cfg *config.Config, h *handlers.Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestContext(logger),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	)
	r.NoRoute(handlers.NotFound)

	// HEALTHCHECK
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// USERS
	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
		users.GET("/:id/stars", h.ListUserStars)
		users.DELETE("/:id/stars", h.DeleteUserStars)
		users.GET("/:id/nfc", h.ListUserTags)
		users.GET("/:id/attendance", h.ListUserAttendance)
	}

	// STARS
	r.POST("/stars", h.CreateStar)
	r.GET("/stars/:id", h.GetStar)
	r.DELETE("/stars/:id", h.DeleteStar)

	// NFC
	r.POST("/nfc", h.LinkTag)
	r.GET("/nfc/:id", h.GetTag)
	r.GET("/nfc/:id/user", h.GetTagUser)
	r.DELETE("/nfc/:id", h.UnlinkTag)

	// ATTENDANCE
	r.POST("/attendance", h.MarkAttendance)
	r.GET("/attendance", h.ListAttendance)
	r.DELETE("/attendance/:id", h.DeleteAttendance)

	// AUDIT
	r.GET("/audit", h.ListAuditLogs)

	return r
}
