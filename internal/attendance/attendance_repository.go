package attendance

import (
	"errors"

	"gorm.io/gorm"
)

// AttendanceRepository defines the interface for attendance data operations
type AttendanceRepository interface {
	GetByEventAndUser(eventID, userID uint) (*Attendance, error)
	Create(a *Attendance) error
	UpdateStatus(id uint, status string) error
	CountByEvent(eventID uint, status string) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByEventAndUser(eventID, userID uint) (*Attendance, error) {
	var a Attendance
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepository) Create(a *Attendance) error {
	return r.db.Create(a).Error
}

func (r *attendanceRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&Attendance{}).Where("id = ?", id).Update("status", status).Error
}

func (r *attendanceRepository) CountByEvent(eventID uint, status string) (int64, error) {
	var count int64
	query := r.db.Model(&Attendance{}).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
