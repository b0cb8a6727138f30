package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Event is a scheduled training session belonging to one club. Rows are
// created once and never mutated here.
type Event struct {
	gorm.Model
	ClubID       uint      `json:"club_id" gorm:"index;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	StartTime    time.Time `json:"start_time" gorm:"index;not null"`
	LocationName string    `json:"location_name"`
	CreatedByID  uint      `json:"created_by_id" gorm:"index"`
}

type CreateSessionRequest struct {
	Title        string `json:"title" binding:"required,min=2,max=200"`
	StartTime    string `json:"start_time" binding:"required" example:"2024-02-13T18:00"`
	Description  string `json:"description" binding:"max=1000"`
	LocationName string `json:"location_name" binding:"max=200"`
}

// RosterEntry is one line of a session's attendance roster: an active member
// and their recorded status, or nil when nothing was recorded yet.
type RosterEntry struct {
	UserID    uint    `json:"user_id"`
	FullName  string  `json:"full_name"`
	AvatarURL string  `json:"avatar_url"`
	Status    *string `json:"status"`
}

// SessionDetailResponse is the session page payload: the event plus the
// full roster.
type SessionDetailResponse struct {
	Event  Event         `json:"event"`
	Roster []RosterEntry `json:"roster"`
}

// Session start times arrive in the HTML datetime-local shape, with or
// without seconds.
var startTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// ErrBadStartTime is returned when a start time cannot be parsed.
var ErrBadStartTime = errors.New("start_time must look like 2006-01-02T15:04")

// ParseStartTime interprets a datetime-local value as local wall-clock time
// and normalizes it to UTC. This mirrors how submitted session times have
// always been stored, so existing rows keep meaning the same instant.
func ParseStartTime(raw string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadStartTime
}
