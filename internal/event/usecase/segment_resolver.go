package usecase

import (
	"context"

	authusecase "stravarace-backend/internal/auth/usecase"
	eventdomain "stravarace-backend/internal/event/domain"
	"stravarace-backend/internal/event/repository"
	"stravarace-backend/pkg/strava"
)

// segmentResolver implements SegmentResolver as a write-through cache over
// the local segment table: hits never touch Strava, misses are fetched with
// the acting user's token and persisted immediately. Cached rows have no TTL.
type segmentResolver struct {
	segmentRepo  repository.SegmentRepository
	tokens       authusecase.AccessTokenProvider
	stravaClient *strava.Client
}

// NewSegmentResolver creates a new instance of segmentResolver
func NewSegmentResolver(segmentRepo repository.SegmentRepository, tokens authusecase.AccessTokenProvider, stravaClient *strava.Client) SegmentResolver {
	return &segmentResolver{
		segmentRepo:  segmentRepo,
		tokens:       tokens,
		stravaClient: stravaClient,
	}
}

func (r *segmentResolver) Resolve(ctx context.Context, userID int64, segmentIDs []int64) ([]eventdomain.Segment, error) {
	segments := make([]eventdomain.Segment, 0, len(segmentIDs))

	// The token is only obtained on the first cache miss; a fully cached
	// request must not depend on the user having a usable credential.
	accessToken := ""

	for _, id := range segmentIDs {
		cached, err := r.segmentRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			segments = append(segments, *cached)
			continue
		}

		if accessToken == "" {
			accessToken, err = r.tokens.GetValidAccessToken(ctx, userID)
			if err != nil {
				return nil, err
			}
		}

		fetched, err := r.stravaClient.GetSegment(ctx, accessToken, id)
		if err != nil {
			return nil, err
		}

		segment := eventdomain.Segment{
			ID:        fetched.ID,
			Name:      fetched.Name,
			Distance:  fetched.Distance,
			Elevation: fetched.ElevationGain,
		}
		if err := r.segmentRepo.Create(&segment); err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	return segments, nil
}
