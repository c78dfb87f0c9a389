package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	authrepo "stravarace-backend/internal/auth/repository"
	authusecase "stravarace-backend/internal/auth/usecase"
	eventdomain "stravarace-backend/internal/event/domain"
	eventrepo "stravarace-backend/internal/event/repository"
	eventusecase "stravarace-backend/internal/event/usecase"
	webhookdto "stravarace-backend/internal/webhook/dto"
	"stravarace-backend/pkg/apperr"
	"stravarace-backend/pkg/strava"
)

// Ingestor turns an activity-created notification into zero or more results:
// fetch the activity with the owner's credential, match its segment efforts
// against the owner's open events, record a result per matching pair.
type Ingestor struct {
	userRepo     authrepo.UserRepository
	eventRepo    eventrepo.EventRepository
	tokens       authusecase.AccessTokenProvider
	stravaClient *strava.Client
	events       eventusecase.EventUsecase
}

func NewIngestor(userRepo authrepo.UserRepository, eventRepo eventrepo.EventRepository, tokens authusecase.AccessTokenProvider, stravaClient *strava.Client, events eventusecase.EventUsecase) *Ingestor {
	return &Ingestor{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		tokens:       tokens,
		stravaClient: stravaClient,
		events:       events,
	}
}

// HandleActivityEvent processes one notification. Notifications that are not
// activity creations, or whose athlete is unknown, are acknowledged no-ops.
// Each effort/event pairing is attempted independently; a duplicate result is
// skipped silently and any other failure is collected without aborting the
// remaining pairs.
func (s *Ingestor) HandleActivityEvent(ctx context.Context, notification *webhookdto.ActivityNotification) error {
	if notification.ObjectType != "activity" || notification.AspectType != "create" {
		return nil
	}

	user, err := s.userRepo.FindByID(notification.OwnerID)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[Webhook] No user for athlete %d, ignoring notification", notification.OwnerID)
		return nil
	}

	eventTime := time.Unix(notification.EventTime, 0)
	openEvents, err := s.eventRepo.FindOpenEvents(user.ID, eventTime)
	if err != nil {
		return err
	}
	if len(openEvents) == 0 {
		return nil
	}

	accessToken, err := s.tokens.GetValidAccessToken(ctx, user.ID)
	if err != nil {
		return err
	}

	activity, err := s.stravaClient.GetActivity(ctx, accessToken, notification.ObjectID)
	if err != nil {
		return err
	}

	recorded := 0
	failed := 0
	for _, effort := range activity.SegmentEfforts {
		for _, openEvent := range openEvents {
			if !containsSegment(openEvent.Segments, effort.Segment.ID) {
				continue
			}

			err := s.events.AddResult(user.ID, openEvent.ID, effort.Segment.ID, effort.ElapsedTime)
			switch {
			case err == nil:
				recorded++
			case errors.Is(err, apperr.ErrItemExists):
				// Already recorded, likely a redelivered notification.
			default:
				failed++
				log.Printf("[Webhook] Failed to record result (user %d, event %s, segment %d): %v",
					user.ID, openEvent.ID, effort.Segment.ID, err)
			}
		}
	}

	log.Printf("[Webhook] Activity %d for athlete %d: %d results recorded, %d failed",
		activity.ID, user.ID, recorded, failed)

	if failed > 0 {
		return fmt.Errorf("%d result recordings failed for activity %d", failed, activity.ID)
	}
	return nil
}

func containsSegment(segments []eventdomain.Segment, id int64) bool {
	for _, segment := range segments {
		if segment.ID == id {
			return true
		}
	}
	return false
}
