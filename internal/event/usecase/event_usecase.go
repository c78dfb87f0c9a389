package usecase

import (
	"context"
	"fmt"
	"time"

	authrepo "stravarace-backend/internal/auth/repository"
	eventdomain "stravarace-backend/internal/event/domain"
	eventdto "stravarace-backend/internal/event/dto"
	"stravarace-backend/internal/event/repository"
	"stravarace-backend/pkg/apperr"
)

// eventUsecase implements EventUsecase interface
type eventUsecase struct {
	eventRepo repository.EventRepository
	userRepo  authrepo.UserRepository
	resolver  SegmentResolver
}

// NewEventUsecase creates a new instance of eventUsecase
func NewEventUsecase(eventRepo repository.EventRepository, userRepo authrepo.UserRepository, resolver SegmentResolver) EventUsecase {
	return &eventUsecase{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		resolver:  resolver,
	}
}

func (u *eventUsecase) CreateEvent(ctx context.Context, req *eventdto.CreateEventRequest) (*eventdomain.Event, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, fmt.Errorf("start date must precede end date: %w", apperr.ErrEventTimeViolated)
	}

	creator, err := u.userRepo.FindByID(req.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, fmt.Errorf("user %d: %w", req.CreatorID, apperr.ErrNotFound)
	}

	segments, err := u.resolver.Resolve(ctx, req.CreatorID, req.SegmentIDs)
	if err != nil {
		return nil, err
	}

	event := &eventdomain.Event{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   req.CreatorID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := u.eventRepo.Create(event, req.SegmentIDs); err != nil {
		return nil, err
	}

	event.Segments = segments
	return event, nil
}

func (u *eventUsecase) GetAllEvents() ([]*eventdomain.Event, error) {
	events, err := u.eventRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events: %w", apperr.ErrNotFound)
	}
	return events, nil
}

func (u *eventUsecase) GetEvent(id string) (*eventdomain.Event, error) {
	return u.mustGetEvent(id)
}

func (u *eventUsecase) AddCompetitors(eventID string, userIDs []int64) error {
	event, err := u.mustGetEvent(eventID)
	if err != nil {
		return err
	}
	if event.Started(time.Now()) {
		return fmt.Errorf("event %s already started: %w", eventID, apperr.ErrEventTimeViolated)
	}

	if err := u.usersMustExist(userIDs); err != nil {
		return err
	}

	enrolled, err := u.eventRepo.CompetitorIDs(eventID)
	if err != nil {
		return err
	}

	newIDs := subtract(userIDs, enrolled)
	if len(newIDs) == 0 {
		return apperr.ErrCompetitorAssigned
	}

	return u.eventRepo.AddCompetitors(eventID, newIDs)
}

func (u *eventUsecase) RemoveCompetitors(eventID string, userIDs []int64) error {
	event, err := u.mustGetEvent(eventID)
	if err != nil {
		return err
	}
	if event.Started(time.Now()) {
		return fmt.Errorf("event %s already started: %w", eventID, apperr.ErrEventTimeViolated)
	}

	if err := u.usersMustExist(userIDs); err != nil {
		return err
	}

	// Removing a never-enrolled id is a no-op, not an error.
	return u.eventRepo.RemoveCompetitors(eventID, userIDs)
}

func (u *eventUsecase) AddSegments(ctx context.Context, actorID int64, eventID string, segmentIDs []int64) error {
	event, err := u.mustGetEvent(eventID)
	if err != nil {
		return err
	}
	if event.Started(time.Now()) {
		return fmt.Errorf("event %s already started: %w", eventID, apperr.ErrEventTimeViolated)
	}

	if _, err := u.resolver.Resolve(ctx, actorID, segmentIDs); err != nil {
		return err
	}

	attached, err := u.eventRepo.SegmentIDs(eventID)
	if err != nil {
		return err
	}

	newIDs := subtract(segmentIDs, attached)
	if len(newIDs) == 0 {
		return apperr.ErrSegmentAssigned
	}

	return u.eventRepo.AddSegments(eventID, newIDs)
}

func (u *eventUsecase) RemoveSegments(eventID string, segmentIDs []int64) error {
	event, err := u.mustGetEvent(eventID)
	if err != nil {
		return err
	}
	if event.Started(time.Now()) {
		return fmt.Errorf("event %s already started: %w", eventID, apperr.ErrEventTimeViolated)
	}

	return u.eventRepo.RemoveSegments(eventID, segmentIDs)
}

func (u *eventUsecase) AddResult(userID int64, eventID string, segmentID int64, elapsed uint32) error {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}

	event, err := u.mustGetEvent(eventID)
	if err != nil {
		return err
	}

	enrolled := false
	for _, competitor := range event.Competitors {
		if competitor.ID == userID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		return fmt.Errorf("user %d not enrolled to event %s: %w", userID, eventID, apperr.ErrNotFound)
	}

	attached := false
	for _, segment := range event.Segments {
		if segment.ID == segmentID {
			attached = true
			break
		}
	}
	if !attached {
		return fmt.Errorf("segment %d not present in event %s: %w", segmentID, eventID, apperr.ErrNotFound)
	}

	exists, err := u.eventRepo.HasResult(eventID, segmentID, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("result for user %d on segment %d: %w", userID, segmentID, apperr.ErrItemExists)
	}

	return u.eventRepo.CreateResult(&eventdomain.Result{
		EventID:   eventID,
		SegmentID: segmentID,
		UserID:    userID,
		Time:      elapsed,
	})
}

func (u *eventUsecase) mustGetEvent(id string) (*eventdomain.Event, error) {
	event, err := u.eventRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}
	return event, nil
}

func (u *eventUsecase) usersMustExist(userIDs []int64) error {
	existing, err := u.userRepo.ExistingIDs(userIDs)
	if err != nil {
		return err
	}
	if missing := subtract(userIDs, existing); len(missing) > 0 {
		return fmt.Errorf("users %v: %w", missing, apperr.ErrNotFound)
	}
	return nil
}

// subtract returns the ids from want that are absent from have, in order.
func subtract(want, have []int64) []int64 {
	haveSet := make(map[int64]struct{}, len(have))
	for _, id := range have {
		haveSet[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := haveSet[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
