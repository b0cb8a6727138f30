package attendance

import (
	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/event"
	mw "github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AttendanceRoutes sets up the attendance routes
func AttendanceRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	attendanceRepo := NewAttendanceRepository(db)
	eventRepo := event.NewEventRepository(db)
	clubRepo := club.NewClubRepository(db)
	attendanceController := NewAttendanceController(attendanceRepo, eventRepo, clubRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.PUT("/clubs/:club_id/events/:event_id/attendance", attendanceController.SetAttendance)
	}
}
