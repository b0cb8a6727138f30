package club

import (
	"errors"

	"gorm.io/gorm"
)

// ClubRepository defines the interface for club and membership data operations
type ClubRepository interface {
	CreateClub(club *Club) error
	GetClubByID(id uint) (*Club, error)
	GetClubBySlug(slug string) (*Club, error)

	CreateMembership(m *Membership) error
	GetMembership(clubID, userID uint) (*Membership, error)
	GetMembershipByID(id uint) (*Membership, error)
	GetMembershipsByUser(userID uint) ([]MembershipResponse, error)
	UpdateMembershipRole(id uint, role string) error
	GetClubMembers(clubID uint, page, limit int) ([]Member, int64, error)
	CountMembers(clubID uint, status string) (int64, error)

	WithTransaction(txFunc func(ClubRepository) error) error
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new instance of ClubRepository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) CreateClub(club *Club) error {
	return r.db.Create(club).Error
}

func (r *clubRepository) GetClubByID(id uint) (*Club, error) {
	var c Club
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) GetClubBySlug(slug string) (*Club, error) {
	var c Club
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) CreateMembership(m *Membership) error {
	return r.db.Create(m).Error
}

func (r *clubRepository) GetMembership(clubID, userID uint) (*Membership, error) {
	var m Membership
	if err := r.db.Where("club_id = ? AND user_id = ?", clubID, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *clubRepository) GetMembershipByID(id uint) (*Membership, error) {
	var m Membership
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *clubRepository) GetMembershipsByUser(userID uint) ([]MembershipResponse, error) {
	var memberships []Membership
	if err := r.db.Where("user_id = ?", userID).Order("joined_at asc").Find(&memberships).Error; err != nil {
		return nil, err
	}

	out := make([]MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		var c Club
		if err := r.db.First(&c, m.ClubID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, MembershipResponse{
			MembershipID: m.ID,
			Role:         m.Role,
			Status:       m.Status,
			JoinedAt:     m.JoinedAt,
			Club:         c,
		})
	}
	return out, nil
}

func (r *clubRepository) UpdateMembershipRole(id uint, role string) error {
	return r.db.Model(&Membership{}).Where("id = ?", id).Update("role", role).Error
}

func (r *clubRepository) GetClubMembers(clubID uint, page, limit int) ([]Member, int64, error) {
	var members []Member
	var total int64

	query := r.db.Model(&Membership{}).
		Joins("JOIN users ON users.id = memberships.user_id AND users.deleted_at IS NULL").
		Where("memberships.club_id = ?", clubID)

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.
		Select("memberships.id as membership_id, memberships.role, memberships.status, memberships.joined_at, users.id as user_id, users.full_name, users.email, users.avatar_url").
		Order("memberships.joined_at asc").
		Offset(offset).Limit(limit).
		Scan(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *clubRepository) CountMembers(clubID uint, status string) (int64, error) {
	var count int64
	query := r.db.Model(&Membership{}).Where("club_id = ?", clubID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *clubRepository) WithTransaction(txFunc func(ClubRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &clubRepository{db: tx}
		return txFunc(txRepo)
	})
}
