package repository

import (
	"errors"
	"time"

	eventdomain "stravarace-backend/internal/event/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eventRepository implements EventRepository using gorm.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of eventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Create(event *eventdomain.Event, segmentIDs []int64) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreationDate.IsZero() {
		event.CreationDate = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		for _, segmentID := range segmentIDs {
			attachment := &eventdomain.EventSegment{EventID: event.ID, SegmentID: segmentID}
			if err := tx.Create(attachment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *eventRepository) FindAll() ([]*eventdomain.Event, error) {
	var events []*eventdomain.Event
	err := r.db.Order("start_date").Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByID(id string) (*eventdomain.Event, error) {
	var event eventdomain.Event
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.
		Joins("JOIN event_competitors ON event_competitors.user_id = users.id").
		Where("event_competitors.event_id = ?", id).
		Find(&event.Competitors).Error; err != nil {
		return nil, err
	}

	if err := r.db.
		Joins("JOIN event_segments ON event_segments.segment_id = segments.id").
		Where("event_segments.event_id = ?", id).
		Find(&event.Segments).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("event_id = ?", id).Find(&event.Results).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) CompetitorIDs(eventID string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&eventdomain.EventCompetitor{}).
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *eventRepository) AddCompetitors(eventID string, userIDs []int64) error {
	enrollments := make([]eventdomain.EventCompetitor, 0, len(userIDs))
	for _, userID := range userIDs {
		enrollments = append(enrollments, eventdomain.EventCompetitor{EventID: eventID, UserID: userID})
	}
	return r.db.Create(&enrollments).Error
}

func (r *eventRepository) RemoveCompetitors(eventID string, userIDs []int64) error {
	return r.db.
		Where("event_id = ? AND user_id IN ?", eventID, userIDs).
		Delete(&eventdomain.EventCompetitor{}).Error
}

func (r *eventRepository) SegmentIDs(eventID string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&eventdomain.EventSegment{}).
		Where("event_id = ?", eventID).
		Pluck("segment_id", &ids).Error
	return ids, err
}

func (r *eventRepository) AddSegments(eventID string, segmentIDs []int64) error {
	attachments := make([]eventdomain.EventSegment, 0, len(segmentIDs))
	for _, segmentID := range segmentIDs {
		attachments = append(attachments, eventdomain.EventSegment{EventID: eventID, SegmentID: segmentID})
	}
	return r.db.Create(&attachments).Error
}

func (r *eventRepository) RemoveSegments(eventID string, segmentIDs []int64) error {
	return r.db.
		Where("event_id = ? AND segment_id IN ?", eventID, segmentIDs).
		Delete(&eventdomain.EventSegment{}).Error
}

func (r *eventRepository) HasResult(eventID string, segmentID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&eventdomain.Result{}).
		Where("event_id = ? AND segment_id = ? AND user_id = ?", eventID, segmentID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) CreateResult(result *eventdomain.Result) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	result.CreatedAt = time.Now()
	return r.db.Create(result).Error
}

func (r *eventRepository) FindOpenEvents(userID int64, at time.Time) ([]*eventdomain.Event, error) {
	var events []*eventdomain.Event
	err := r.db.
		Where("start_date < ? AND end_date > ?", at, at).
		Where("creator_id = ? OR id IN (?)", userID,
			r.db.Model(&eventdomain.EventCompetitor{}).Select("event_id").Where("user_id = ?", userID)).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if err := r.db.
			Joins("JOIN event_segments ON event_segments.segment_id = segments.id").
			Where("event_segments.event_id = ?", event.ID).
			Find(&event.Segments).Error; err != nil {
			return nil, err
		}
	}
	return events, nil
}
