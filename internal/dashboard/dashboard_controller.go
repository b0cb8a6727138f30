package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/event"
	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/rjimenez-dev/runclub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// DashboardController handles the club stats endpoint
type DashboardController struct {
	repo      DashboardRepository
	clubRepo  club.ClubRepository
	eventRepo event.EventRepository
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(repo DashboardRepository, clubRepo club.ClubRepository, eventRepo event.EventRepository) *DashboardController {
	return &DashboardController{repo: repo, clubRepo: clubRepo, eventRepo: eventRepo}
}

// GetClubStats godoc
// @Summary Club dashboard stats
// @Description Active member count, sessions scheduled this month, overall attendance rate and the next upcoming session.
// @Tags Dashboard
// @Produce json
// @Param club_id path uint true "Club ID"
// @Success 200 {object} responses.SuccessResponse{data=StatsResponse} "Stats"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Not a member of this club"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/stats [get]
func (dc *DashboardController) GetClubStats(c *gin.Context) {
	clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid club ID")
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	membership, err := dc.clubRepo.GetMembership(uint(clubID), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve membership")
		return
	}
	if membership == nil {
		responses.Forbidden(c, club.ErrNoMembership.Error())
		return
	}

	activeMembers, err := dc.clubRepo.CountMembers(uint(clubID), club.StatusActive)
	if err != nil {
		responses.InternalServerError(c, "Failed to count members")
		return
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	sessionsThisMonth, err := dc.eventRepo.CountEventsBetween(uint(clubID), monthStart, monthEnd)
	if err != nil {
		responses.InternalServerError(c, "Failed to count sessions")
		return
	}

	attended, err := dc.repo.CountAttendanceByClub(uint(clubID), "attended")
	if err != nil {
		responses.InternalServerError(c, "Failed to count attendance")
		return
	}
	recorded, err := dc.repo.CountAttendanceByClub(uint(clubID), "")
	if err != nil {
		responses.InternalServerError(c, "Failed to count attendance")
		return
	}

	var rate float64
	if recorded > 0 {
		rate = float64(attended) / float64(recorded)
	}

	nextSession, err := dc.eventRepo.NextEvent(uint(clubID), now)
	if err != nil {
		responses.InternalServerError(c, "Failed to load next session")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", StatsResponse{
		ActiveMembers:     activeMembers,
		SessionsThisMonth: sessionsThisMonth,
		AttendanceRate:    rate,
		NextSession:       nextSession,
	})
}
