package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// EventRepository defines the interface for training session data operations
type EventRepository interface {
	CreateEvent(e *Event) error
	GetEventByID(id uint) (*Event, error)
	GetEventsByClub(clubID uint, page, limit int) ([]Event, int64, error)
	GetRoster(eventID, clubID uint) ([]RosterEntry, error)
	CountEventsBetween(clubID uint, from, to time.Time) (int64, error)
	NextEvent(clubID uint, after time.Time) (*Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) GetEventsByClub(clubID uint, page, limit int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.Model(&Event{}).Where("club_id = ?", clubID)
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("start_time asc").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GetRoster lists the club's active members with their recorded status for
// the event. Members with no attendance row come back with a nil status.
func (r *eventRepository) GetRoster(eventID, clubID uint) ([]RosterEntry, error) {
	var roster []RosterEntry
	err := r.db.Table("memberships").
		Select("users.id as user_id, users.full_name, users.avatar_url, attendances.status").
		Joins("JOIN users ON users.id = memberships.user_id AND users.deleted_at IS NULL").
		Joins("LEFT JOIN attendances ON attendances.user_id = memberships.user_id AND attendances.event_id = ? AND attendances.deleted_at IS NULL", eventID).
		Where("memberships.club_id = ? AND memberships.status = ? AND memberships.deleted_at IS NULL", clubID, "active").
		Order("memberships.joined_at asc").
		Scan(&roster).Error
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *eventRepository) CountEventsBetween(clubID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&Event{}).
		Where("club_id = ? AND start_time >= ? AND start_time < ?", clubID, from, to).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) NextEvent(clubID uint, after time.Time) (*Event, error) {
	var e Event
	err := r.db.Where("club_id = ? AND start_time > ?", clubID, after).
		Order("start_time asc").
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
