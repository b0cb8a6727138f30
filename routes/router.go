package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/attendance"
	"github.com/rjimenez-dev/runclub/internal/auth"
	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/dashboard"
	"github.com/rjimenez-dev/runclub/internal/event"
	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/rjimenez-dev/runclub/pkg/metrics"
)

func SetupRoutes() *gin.Engine {
	cfg := config.GetConfig()
	db := config.DB

	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(config.Log))
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, cfg)
	club.ClubRoutes(api, db, cfg)
	event.EventRoutes(api, db, cfg)
	attendance.AttendanceRoutes(api, db, cfg)
	dashboard.DashboardRoutes(api, db, cfg)

	return r
}
