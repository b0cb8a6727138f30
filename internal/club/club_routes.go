package club

import (
	"github.com/rjimenez-dev/runclub/config"
	mw "github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClubRoutes sets up all club and membership routes
func ClubRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	clubRepo := NewClubRepository(db)
	clubController := NewClubController(clubRepo)

	// Public club page, addressed by slug like the shareable invite link
	router.GET("/club/:slug", clubController.GetClubBySlug)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/clubs", clubController.CreateClub)
		authRoutes.POST("/club/:slug/join", clubController.JoinClub)

		authRoutes.GET("/clubs/:club_id/members", clubController.GetClubMembers)
		authRoutes.PATCH("/clubs/:club_id/members/:membership_id/role", clubController.UpdateMemberRole)

		authRoutes.GET("/users/me/memberships", clubController.GetMyMemberships)
	}
}
