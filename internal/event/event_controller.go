package event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/rjimenez-dev/runclub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// EventController handles training session HTTP requests
type EventController struct {
	repo     EventRepository
	clubRepo club.ClubRepository
}

// NewEventController creates a new event controller
func NewEventController(repo EventRepository, clubRepo club.ClubRepository) *EventController {
	return &EventController{repo: repo, clubRepo: clubRepo}
}

func (ec *EventController) callerMembership(c *gin.Context) (*club.Membership, uint, bool) {
	clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid club ID")
		return nil, 0, false
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, 0, false
	}

	membership, err := ec.clubRepo.GetMembership(uint(clubID), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve membership")
		return nil, 0, false
	}
	if membership == nil {
		responses.Forbidden(c, club.ErrNoMembership.Error())
		return nil, 0, false
	}
	return membership, uint(clubID), true
}

// CreateSession godoc
// @Summary Schedule a training session
// @Description Creates a session for the club. Owners and coaches only. The start time is read as local wall-clock time and stored UTC-normalized.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} responses.SuccessResponse{data=Event} "Session created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Only owners and coaches can create sessions"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events [post]
func (ec *EventController) CreateSession(c *gin.Context) {
	membership, clubID, ok := ec.callerMembership(c)
	if !ok {
		return
	}

	if !club.CanCreateSessions(membership) {
		responses.Forbidden(c, "Only owners and coaches can create sessions")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Title and start time are required: "+err.Error())
		return
	}

	startTime, err := ParseStartTime(req.StartTime)
	if err != nil {
		if errors.Is(err, ErrBadStartTime) {
			responses.BadRequest(c, err.Error())
			return
		}
		responses.InternalServerError(c, "Failed to parse start time")
		return
	}

	newEvent := Event{
		ClubID:       clubID,
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    startTime,
		LocationName: req.LocationName,
		CreatedByID:  membership.UserID,
	}
	if err := ec.repo.CreateEvent(&newEvent); err != nil {
		responses.InternalServerError(c, "Failed to create training session")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Session created successfully", newEvent)
}

// GetSessions godoc
// @Summary List training sessions
// @Description Lists the club's sessions ordered by start time, soonest first.
// @Tags Sessions
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} responses.PaginatedResponse{data=[]Event} "Sessions"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Not a member of this club"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events [get]
func (ec *EventController) GetSessions(c *gin.Context) {
	_, clubID, ok := ec.callerMembership(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	events, total, err := ec.repo.GetEventsByClub(clubID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve sessions")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Sessions retrieved successfully", events, total, page, limit)
}

// GetSession godoc
// @Summary Session detail
// @Description Retrieves one session with its attendance roster: every active member and their recorded status, null when unrecorded.
// @Tags Sessions
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param event_id path uint true "Event ID"
// @Success 200 {object} responses.SuccessResponse{data=SessionDetailResponse} "Session detail"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Not a member of this club"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events/{event_id} [get]
func (ec *EventController) GetSession(c *gin.Context) {
	_, clubID, ok := ec.callerMembership(c)
	if !ok {
		return
	}

	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid event ID")
		return
	}

	foundEvent, err := ec.repo.GetEventByID(uint(eventID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve session")
		return
	}
	if foundEvent == nil || foundEvent.ClubID != clubID {
		responses.NotFound(c, "Session")
		return
	}

	roster, err := ec.repo.GetRoster(foundEvent.ID, clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Session retrieved successfully", SessionDetailResponse{
		Event:  *foundEvent,
		Roster: roster,
	})
}
