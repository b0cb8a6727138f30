package dashboard

import "github.com/rjimenez-dev/runclub/internal/event"

// StatsResponse backs the dashboard cards: live counts instead of the
// placeholder figures the old dashboard showed.
type StatsResponse struct {
	ActiveMembers     int64        `json:"active_members"`
	SessionsThisMonth int64        `json:"sessions_this_month"`
	AttendanceRate    float64      `json:"attendance_rate"`
	NextSession       *event.Event `json:"next_session"`
}
