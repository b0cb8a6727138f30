package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rjimenez-dev/runclub/internal/club"
	"github.com/rjimenez-dev/runclub/internal/event"
	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDashboardRepo struct {
	attended int64
	recorded int64
}

func (r *stubDashboardRepo) CountAttendanceByClub(clubID uint, status string) (int64, error) {
	if status == "attended" {
		return r.attended, nil
	}
	return r.recorded, nil
}

type stubMembershipRepo struct {
	memberships   []club.Membership
	activeMembers int64
}

func (r *stubMembershipRepo) GetMembership(clubID, userID uint) (*club.Membership, error) {
	for i := range r.memberships {
		m := r.memberships[i]
		if m.ClubID == clubID && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *stubMembershipRepo) CountMembers(uint, string) (int64, error) {
	return r.activeMembers, nil
}

func (r *stubMembershipRepo) CreateClub(*club.Club) error              { return nil }
func (r *stubMembershipRepo) GetClubByID(uint) (*club.Club, error)     { return nil, nil }
func (r *stubMembershipRepo) GetClubBySlug(string) (*club.Club, error) { return nil, nil }
func (r *stubMembershipRepo) CreateMembership(*club.Membership) error  { return nil }
func (r *stubMembershipRepo) GetMembershipByID(uint) (*club.Membership, error) {
	return nil, nil
}
func (r *stubMembershipRepo) GetMembershipsByUser(uint) ([]club.MembershipResponse, error) {
	return nil, nil
}
func (r *stubMembershipRepo) UpdateMembershipRole(uint, string) error { return nil }
func (r *stubMembershipRepo) GetClubMembers(uint, int, int) ([]club.Member, int64, error) {
	return nil, 0, nil
}
func (r *stubMembershipRepo) WithTransaction(txFunc func(club.ClubRepository) error) error {
	return txFunc(r)
}

type stubEventRepo struct {
	events []event.Event
}

func (r *stubEventRepo) CreateEvent(*event.Event) error            { return nil }
func (r *stubEventRepo) GetEventByID(uint) (*event.Event, error)   { return nil, nil }
func (r *stubEventRepo) GetRoster(uint, uint) ([]event.RosterEntry, error) { return nil, nil }
func (r *stubEventRepo) GetEventsByClub(uint, int, int) ([]event.Event, int64, error) {
	return nil, 0, nil
}

func (r *stubEventRepo) CountEventsBetween(clubID uint, from, to time.Time) (int64, error) {
	var count int64
	for _, e := range r.events {
		if e.ClubID == clubID && !e.StartTime.Before(from) && e.StartTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *stubEventRepo) NextEvent(clubID uint, after time.Time) (*event.Event, error) {
	var next *event.Event
	for i := range r.events {
		e := &r.events[i]
		if e.ClubID != clubID || !e.StartTime.After(after) {
			continue
		}
		if next == nil || e.StartTime.Before(next.StartTime) {
			next = e
		}
	}
	if next == nil {
		return nil, nil
	}
	clone := *next
	return &clone, nil
}

func statsContext(t *testing.T, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/clubs/1/stats", nil)
	if userID != 0 {
		c.Set(middleware.AuthUserIDKey, userID)
	}
	c.Params = gin.Params{{Key: "club_id", Value: "1"}}
	return c, w
}

func TestGetClubStats(t *testing.T) {
	now := time.Now().UTC()
	soon := now.Add(2 * time.Hour)
	later := now.Add(48 * time.Hour)

	dc := NewDashboardController(
		&stubDashboardRepo{attended: 3, recorded: 4},
		&stubMembershipRepo{
			memberships: []club.Membership{
				{ClubID: 1, UserID: 8, Role: club.RoleRunner, Status: club.StatusActive},
			},
			activeMembers: 12,
		},
		&stubEventRepo{events: []event.Event{
			{Model: gorm.Model{ID: 1}, ClubID: 1, Title: "Tuesday Tempo Run", StartTime: soon},
			{Model: gorm.Model{ID: 2}, ClubID: 1, Title: "Weekend Long Run", StartTime: later},
		}},
	)

	c, w := statsContext(t, 8)
	dc.GetClubStats(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data StatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.Equal(t, int64(12), envelope.Data.ActiveMembers)
	assert.InDelta(t, 0.75, envelope.Data.AttendanceRate, 1e-9)
	require.NotNil(t, envelope.Data.NextSession)
	assert.Equal(t, "Tuesday Tempo Run", envelope.Data.NextSession.Title, "soonest upcoming session wins")
}

func TestGetClubStats_NonMemberForbidden(t *testing.T) {
	dc := NewDashboardController(
		&stubDashboardRepo{},
		&stubMembershipRepo{},
		&stubEventRepo{},
	)

	c, w := statsContext(t, 8)
	dc.GetClubStats(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetClubStats_ZeroRecordedAttendance(t *testing.T) {
	dc := NewDashboardController(
		&stubDashboardRepo{attended: 0, recorded: 0},
		&stubMembershipRepo{
			memberships: []club.Membership{
				{ClubID: 1, UserID: 8, Role: club.RoleOwner, Status: club.StatusActive},
			},
		},
		&stubEventRepo{},
	)

	c, w := statsContext(t, 8)
	dc.GetClubStats(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data StatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Zero(t, envelope.Data.AttendanceRate, "no recorded rows means a zero rate, not a division error")
	assert.Nil(t, envelope.Data.NextSession)
}
