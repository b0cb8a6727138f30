package club

import (
	"time"

	"gorm.io/gorm"
)

// Membership roles, in decreasing order of authority.
const (
	RoleOwner  = "owner"
	RoleCoach  = "coach"
	RoleRunner = "runner"
)

// Membership statuses.
const (
	StatusActive         = "active"
	StatusInactive       = "inactive"
	StatusPendingPayment = "pending_payment"
)

// Club is a tenant: it owns a member roster and a training calendar. The slug
// is the public lookup key used in shareable links.
type Club struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null"`
	Slug          string `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string `json:"description"`
	LogoURL       string `json:"logo_url"`
	BrandingColor string `json:"branding_color" gorm:"default:'#000000'"`
}

// Membership links a user to a club with a role and a status. A user holds at
// most one membership per club.
type Membership struct {
	gorm.Model
	ClubID   uint      `json:"club_id" gorm:"index;not null;uniqueIndex:idx_club_user"`
	UserID   uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_club_user"`
	Role     string    `json:"role" gorm:"default:'runner'"`
	Status   string    `json:"status" gorm:"default:'pending_payment'"`
	JoinedAt time.Time `json:"joined_at"`
}

// Member is a roster row: a membership joined with its profile.
type Member struct {
	MembershipID uint      `json:"membership_id"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	JoinedAt     time.Time `json:"joined_at"`
	UserID       uint      `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url"`
}

// --- DTOs ---

type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description" binding:"max=1000"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=coach runner"`
}

type ClubPublicResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	LogoURL       string `json:"logo_url"`
	BrandingColor string `json:"branding_color"`
	MemberCount   int64  `json:"member_count"`
}

// MembershipResponse is a caller-facing membership with its club attached,
// used by the club-context listing.
type MembershipResponse struct {
	MembershipID uint      `json:"membership_id"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	JoinedAt     time.Time `json:"joined_at"`
	Club         Club      `json:"club"`
}
