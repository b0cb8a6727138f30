package dashboard

import "gorm.io/gorm"

// DashboardRepository runs the cross-table counts the stats cards need.
type DashboardRepository interface {
	CountAttendanceByClub(clubID uint, status string) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountAttendanceByClub(clubID uint, status string) (int64, error) {
	var count int64
	query := r.db.Table("attendances").
		Joins("JOIN events ON events.id = attendances.event_id AND events.deleted_at IS NULL").
		Where("events.club_id = ? AND attendances.deleted_at IS NULL", clubID)
	if status != "" {
		query = query.Where("attendances.status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
