package dashboard

import (
	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/event"
	mw "github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardRoutes sets up the stats route
func DashboardRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewDashboardRepository(db)
	clubRepo := club.NewClubRepository(db)
	eventRepo := event.NewEventRepository(db)
	controller := NewDashboardController(repo, clubRepo, eventRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.GET("/clubs/:club_id/stats", controller.GetClubStats)
	}
}
