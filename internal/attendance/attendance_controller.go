package attendance

import (
	"net/http"
	"strconv"

	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/event"
	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/rjimenez-dev/runclub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// AttendanceController handles attendance HTTP requests
type AttendanceController struct {
	repo      AttendanceRepository
	eventRepo event.EventRepository
	clubRepo  club.ClubRepository
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(repo AttendanceRepository, eventRepo event.EventRepository, clubRepo club.ClubRepository) *AttendanceController {
	return &AttendanceController{repo: repo, eventRepo: eventRepo, clubRepo: clubRepo}
}

// SetAttendance godoc
// @Summary Record attendance
// @Description Sets a member's status for a session: inserts on first record, updates afterwards. Calling twice with the same status is a no-op. A failed write reports the previously recorded status so an optimistic caller can revert its display; the write is never auto-retried.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param event_id path uint true "Event ID"
// @Param attendance body SetAttendanceRequest true "Member and status"
// @Success 200 {object} responses.SuccessResponse{data=Attendance} "Status recorded"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Not allowed for this member"
// @Failure 404 {object} responses.ErrorResponse "Session or member not found"
// @Failure 500 {object} responses.ErrorResponse "Write failed, previous status included"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events/{event_id}/attendance [put]
func (ac *AttendanceController) SetAttendance(c *gin.Context) {
	clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid club ID")
		return
	}
	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	caller, err := ac.clubRepo.GetMembership(uint(clubID), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve membership")
		return
	}
	if caller == nil {
		responses.Forbidden(c, club.ErrNoMembership.Error())
		return
	}

	foundEvent, err := ac.eventRepo.GetEventByID(uint(eventID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve session")
		return
	}
	if foundEvent == nil || foundEvent.ClubID != uint(clubID) {
		responses.NotFound(c, "Session")
		return
	}

	if !club.CanRecordAttendanceFor(caller, req.MemberID) {
		responses.Forbidden(c, "Only owners and coaches can record attendance for other members")
		return
	}

	member, err := ac.clubRepo.GetMembership(uint(clubID), req.MemberID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve member")
		return
	}
	if member == nil {
		responses.NotFound(c, "Member")
		return
	}

	// Look up first, then insert or update. The unique (event_id, user_id)
	// index keeps this pair single-rowed even if two writers race.
	existing, err := ac.repo.GetByEventAndUser(foundEvent.ID, req.MemberID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load attendance")
		return
	}

	if existing == nil {
		record := Attendance{
			EventID: foundEvent.ID,
			UserID:  req.MemberID,
			Status:  req.Status,
		}
		if err := ac.repo.Create(&record); err != nil {
			// Nothing was recorded before, so the caller reverts to blank.
			responses.SendErrorWithData(c, http.StatusInternalServerError,
				"Failed to record attendance", RollbackPayload{PreviousStatus: nil})
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Attendance recorded successfully", record)
		return
	}

	previous := existing.Status
	if err := ac.repo.UpdateStatus(existing.ID, req.Status); err != nil {
		responses.SendErrorWithData(c, http.StatusInternalServerError,
			"Failed to update attendance", RollbackPayload{PreviousStatus: &previous})
		return
	}

	existing.Status = req.Status
	responses.SendSuccess(c, http.StatusOK, "Attendance updated successfully", existing)
}
