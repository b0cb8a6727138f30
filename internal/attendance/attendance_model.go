package attendance

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses. There is deliberately no "clear back to unrecorded"
// path: a missing row is the unrecorded state and rows are never deleted.
const (
	StatusRegistered = "registered"
	StatusAttended   = "attended"
	StatusSkipped    = "skipped"
)

// Attendance records a member's participation outcome for one event. At most
// one row exists per (event, user) pair.
type Attendance struct {
	gorm.Model
	EventID     uint       `json:"event_id" gorm:"index;not null;uniqueIndex:idx_event_user"`
	UserID      uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_event_user"`
	Status      string     `json:"status" gorm:"default:'registered'"`
	CheckInTime *time.Time `json:"check_in_time"`
	Notes       string     `json:"notes"`
}

type SetAttendanceRequest struct {
	MemberID uint   `json:"member_id" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=attended skipped"`
}

// RollbackPayload rides on a failed set-attendance response. It tells a
// caller that displayed the new status optimistically which value to revert
// to; nil means the member had nothing recorded.
type RollbackPayload struct {
	PreviousStatus *string `json:"previous_status"`
}
