package usecase

import (
	"context"

	eventdomain "stravarace-backend/internal/event/domain"
	eventdto "stravarace-backend/internal/event/dto"
)

// EventUsecase is the event/result domain engine. Mutating operations take
// the acting user's id so segment fetches run with that user's credential.
// Time-window enforcement for AddResult is the delivery layer's job; the
// engine only checks membership and duplicates there.
type EventUsecase interface {
	CreateEvent(ctx context.Context, req *eventdto.CreateEventRequest) (*eventdomain.Event, error)
	GetAllEvents() ([]*eventdomain.Event, error)
	GetEvent(id string) (*eventdomain.Event, error)
	AddCompetitors(eventID string, userIDs []int64) error
	RemoveCompetitors(eventID string, userIDs []int64) error
	AddSegments(ctx context.Context, actorID int64, eventID string, segmentIDs []int64) error
	RemoveSegments(eventID string, segmentIDs []int64) error
	AddResult(userID int64, eventID string, segmentID int64, elapsed uint32) error
}

// SegmentResolver returns one segment per requested id, in order, pulling
// uncached segments from Strava with userID's credential and persisting them.
type SegmentResolver interface {
	Resolve(ctx context.Context, userID int64, segmentIDs []int64) ([]eventdomain.Segment, error)
}
