package repository

import (
	"time"

	eventdomain "stravarace-backend/internal/event/domain"
)

// EventRepository persists events, their membership rows and results.
// Find methods return (nil, nil) when the row does not exist.
type EventRepository interface {
	Create(event *eventdomain.Event, segmentIDs []int64) error
	FindAll() ([]*eventdomain.Event, error)
	// FindByID assembles the event with competitors, segments and results.
	FindByID(id string) (*eventdomain.Event, error)

	CompetitorIDs(eventID string) ([]int64, error)
	AddCompetitors(eventID string, userIDs []int64) error
	RemoveCompetitors(eventID string, userIDs []int64) error

	SegmentIDs(eventID string) ([]int64, error)
	AddSegments(eventID string, segmentIDs []int64) error
	RemoveSegments(eventID string, segmentIDs []int64) error

	HasResult(eventID string, segmentID, userID int64) (bool, error)
	CreateResult(result *eventdomain.Result) error

	// FindOpenEvents returns the events the user created or is enrolled in
	// whose window contains at, with Segments populated.
	FindOpenEvents(userID int64, at time.Time) ([]*eventdomain.Event, error)
}

// SegmentRepository is the local segment cache.
type SegmentRepository interface {
	FindByID(id int64) (*eventdomain.Segment, error)
	Create(segment *eventdomain.Segment) error
}
