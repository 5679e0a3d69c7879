package api

import (
	"log"
	stdhttp "net/http"

	intconfig "bustix/internal/config"
	"bustix/internal/domain/models"
	h "bustix/internal/http/handlers"
	"bustix/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth([]byte(env.JWTSecret))
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	loginLimiter := middleware.NewRateLimiter(rate.Limit(5.0/60.0), 5)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", loginLimiter.Limit(), h.Login)

		// Schedules
		schedules := api.Group("/schedules", auth)
		schedules.GET("", h.ListSchedules)
		schedules.GET("/:id", h.GetSchedule)
		schedules.GET("/:id/ticket", h.GetTicketPDF)
		schedules.POST("/:id/book", h.BookSeats)

		// Admin-only schedule management and ledger maintenance
		schedules.POST("", adminOnly, h.CreateSchedule)
		schedules.PUT("/reset-daily", adminOnly, h.ResetDaily)
		schedules.PUT("/:id", adminOnly, h.UpdateSchedule)
		schedules.DELETE("/:id", adminOnly, h.DeleteSchedule)
		schedules.POST("/:id/release", adminOnly, h.ReleaseSeats)
	}

	return r
}
