package repository

import (
	"errors"

	eventdomain "stravarace-backend/internal/event/domain"

	"gorm.io/gorm"
)

// segmentRepository implements SegmentRepository using gorm.
type segmentRepository struct {
	db *gorm.DB
}

// NewSegmentRepository creates a new instance of segmentRepository
func NewSegmentRepository(db *gorm.DB) SegmentRepository {
	return &segmentRepository{
		db: db,
	}
}

func (r *segmentRepository) FindByID(id int64) (*eventdomain.Segment, error) {
	var segment eventdomain.Segment
	err := r.db.Where("id = ?", id).First(&segment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &segment, nil
}

func (r *segmentRepository) Create(segment *eventdomain.Segment) error {
	return r.db.Create(segment).Error
}
