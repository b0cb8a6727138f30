package event

import (
	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/club"
	mw "github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EventRoutes sets up all training session routes
func EventRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	eventRepo := NewEventRepository(db)
	clubRepo := club.NewClubRepository(db)
	eventController := NewEventController(eventRepo, clubRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/clubs/:club_id/events", eventController.CreateSession)
		authRoutes.GET("/clubs/:club_id/events", eventController.GetSessions)
		authRoutes.GET("/clubs/:club_id/events/:event_id", eventController.GetSession)
	}
}
