package club

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/rjimenez-dev/runclub/pkg/responses"
	"github.com/rjimenez-dev/runclub/pkg/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClubController handles club and membership HTTP requests
type ClubController struct {
	repo ClubRepository
}

// NewClubController creates a new club controller
func NewClubController(repo ClubRepository) *ClubController {
	return &ClubController{repo: repo}
}

func parseClubID(c *gin.Context) (uint, bool) {
	clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid club ID")
		return 0, false
	}
	return uint(clubID), true
}

// callerMembership resolves the authenticated caller's membership in the
// club named by the route. Club context is always explicit here; nothing
// falls back to "the first membership found".
func (cc *ClubController) callerMembership(c *gin.Context, clubID uint) (*Membership, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}

	membership, err := cc.repo.GetMembership(clubID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve membership")
		return nil, false
	}
	if membership == nil {
		responses.Forbidden(c, ErrNoMembership.Error())
		return nil, false
	}
	return membership, true
}

// CreateClub godoc
// @Summary Create a club
// @Description Creates a club and bootstraps the caller as its active owner. Both rows are written in one transaction.
// @Tags Clubs
// @Accept json
// @Produce json
// @Param club body CreateClubRequest true "Club data"
// @Success 201 {object} responses.SuccessResponse{data=Club} "Club created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 409 {object} responses.ErrorResponse "Slug already taken"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs [post]
func (cc *ClubController) CreateClub(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !validator.IsValidSlug(slug) {
		responses.BadRequest(c, "Slug must be lowercase letters, digits and hyphens")
		return
	}

	newClub := Club{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
	}

	txErr := cc.repo.WithTransaction(func(repo ClubRepository) error {
		if err := repo.CreateClub(&newClub); err != nil {
			return err
		}

		// Bootstrap the caller as owner. Running inside the transaction means
		// a failure here rolls the club row back too, so no ownerless club
		// can ever be left behind.
		ownerMembership := Membership{
			ClubID:   newClub.ID,
			UserID:   userID,
			Role:     RoleOwner,
			Status:   StatusActive,
			JoinedAt: time.Now(),
		}
		return repo.CreateMembership(&ownerMembership)
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			responses.Conflict(c, "This club URL is already taken")
			return
		}
		responses.InternalServerError(c, "Failed to create club")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Club created successfully", newClub)
}

// GetClubBySlug godoc
// @Summary Public club page
// @Description Retrieves a club by its public slug, with its active member count.
// @Tags Clubs
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} responses.SuccessResponse{data=ClubPublicResponse} "Club details"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /club/{slug} [get]
func (cc *ClubController) GetClubBySlug(c *gin.Context) {
	slug := c.Param("slug")

	foundClub, err := cc.repo.GetClubBySlug(slug)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve club")
		return
	}
	if foundClub == nil {
		responses.NotFound(c, "Club")
		return
	}

	memberCount, err := cc.repo.CountMembers(foundClub.ID, StatusActive)
	if err != nil {
		responses.InternalServerError(c, "Failed to count members")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Club retrieved successfully", ClubPublicResponse{
		ID:            foundClub.ID,
		Name:          foundClub.Name,
		Slug:          foundClub.Slug,
		Description:   foundClub.Description,
		LogoURL:       foundClub.LogoURL,
		BrandingColor: foundClub.BrandingColor,
		MemberCount:   memberCount,
	})
}

// JoinClub godoc
// @Summary Join a club
// @Description Adds the caller to the club behind the shared link as an active runner.
// @Tags Clubs
// @Produce json
// @Param slug path string true "Club slug"
// @Success 201 {object} responses.SuccessResponse{data=Membership} "Joined"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Failure 409 {object} responses.ErrorResponse "Already a member"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /club/{slug}/join [post]
func (cc *ClubController) JoinClub(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "You must be logged in to join a club")
		return
	}

	foundClub, err := cc.repo.GetClubBySlug(c.Param("slug"))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve club")
		return
	}
	if foundClub == nil {
		responses.NotFound(c, "Club")
		return
	}

	existing, err := cc.repo.GetMembership(foundClub.ID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership")
		return
	}
	if existing != nil {
		responses.Conflict(c, "You are already a member of this club")
		return
	}

	membership := Membership{
		ClubID:   foundClub.ID,
		UserID:   userID,
		Role:     RoleRunner,
		Status:   StatusActive,
		JoinedAt: time.Now(),
	}
	if err := cc.repo.CreateMembership(&membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.Conflict(c, "You are already a member of this club")
			return
		}
		responses.InternalServerError(c, "Failed to join club. Please try again.")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Joined club successfully", membership)
}

// GetClubMembers godoc
// @Summary Club roster
// @Description Lists the club's members with their profiles, oldest first.
// @Tags Clubs
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} responses.PaginatedResponse{data=[]Member} "Members"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Not a member of this club"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/members [get]
func (cc *ClubController) GetClubMembers(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	if _, ok := cc.callerMembership(c, clubID); !ok {
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

	members, total, err := cc.repo.GetClubMembers(clubID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve members")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "Members retrieved successfully", members, total, page, limit)
}

// UpdateMemberRole godoc
// @Summary Change a member's role
// @Description Owner-only promotion/demotion between coach and runner. The owner's own membership is untouchable.
// @Tags Clubs
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param membership_id path uint true "Membership ID"
// @Param role body UpdateMemberRoleRequest true "New role"
// @Success 200 {object} responses.SuccessResponse{data=Membership} "Role updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Guard failed"
// @Failure 404 {object} responses.ErrorResponse "Member not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/members/{membership_id}/role [patch]
func (cc *ClubController) UpdateMemberRole(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	membershipID, err := strconv.ParseUint(c.Param("membership_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid membership ID")
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	caller, err := cc.repo.GetMembership(clubID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve membership")
		return
	}

	// The owners-only guard fires before the target is looked up, so a
	// non-owner gets the same answer whether or not the target exists.
	var target *Membership
	if caller != nil && caller.Role == RoleOwner {
		target, err = cc.repo.GetMembershipByID(uint(membershipID))
		if err != nil {
			responses.InternalServerError(c, "Failed to load member")
			return
		}
	}

	if err := ValidateRoleChange(caller, target, req.Role); err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			responses.NotFound(c, "Member")
		case errors.Is(err, ErrNoMembership):
			responses.Forbidden(c, err.Error())
		case errors.Is(err, ErrInvalidRole):
			responses.BadRequest(c, err.Error())
		default:
			responses.Forbidden(c, err.Error())
		}
		return
	}

	if err := cc.repo.UpdateMembershipRole(target.ID, req.Role); err != nil {
		responses.InternalServerError(c, "Failed to update role")
		return
	}

	target.Role = req.Role
	responses.SendSuccess(c, http.StatusOK, "Role updated successfully", target)
}

// GetMyMemberships godoc
// @Summary My memberships
// @Description Lists every club the caller belongs to, so clients pick an explicit club context instead of assuming one.
// @Tags Clubs
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]MembershipResponse} "Memberships"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/memberships [get]
func (cc *ClubController) GetMyMemberships(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	memberships, err := cc.repo.GetMembershipsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve memberships")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Memberships retrieved successfully", memberships)
}
