package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "stravarace-backend/internal/auth/domain"
	eventdomain "stravarace-backend/internal/event/domain"
	eventdto "stravarace-backend/internal/event/dto"
	webhookdto "stravarace-backend/internal/webhook/dto"
	"stravarace-backend/internal/webhook/usecase"
	"stravarace-backend/pkg/apperr"
	"stravarace-backend/pkg/strava"
)

type mockUserRepo struct {
	findByIDFn func(id int64) (*authdomain.User, error)
}

func (m *mockUserRepo) Upsert(user *authdomain.User) error { return nil }

func (m *mockUserRepo) FindByID(id int64) (*authdomain.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, nil
}

func (m *mockUserRepo) ExistingIDs(ids []int64) ([]int64, error) { return ids, nil }

func (m *mockUserRepo) Delete(id int64) error { return nil }

type mockEventRepo struct {
	findOpenEventsFn func(userID int64, at time.Time) ([]*eventdomain.Event, error)
}

func (m *mockEventRepo) Create(event *eventdomain.Event, segmentIDs []int64) error { return nil }
func (m *mockEventRepo) FindAll() ([]*eventdomain.Event, error)                    { return nil, nil }
func (m *mockEventRepo) FindByID(id string) (*eventdomain.Event, error)            { return nil, nil }
func (m *mockEventRepo) CompetitorIDs(eventID string) ([]int64, error)             { return nil, nil }
func (m *mockEventRepo) AddCompetitors(eventID string, userIDs []int64) error      { return nil }
func (m *mockEventRepo) RemoveCompetitors(eventID string, userIDs []int64) error   { return nil }
func (m *mockEventRepo) SegmentIDs(eventID string) ([]int64, error)                { return nil, nil }
func (m *mockEventRepo) AddSegments(eventID string, segmentIDs []int64) error      { return nil }
func (m *mockEventRepo) RemoveSegments(eventID string, segmentIDs []int64) error   { return nil }
func (m *mockEventRepo) HasResult(eventID string, segmentID, userID int64) (bool, error) {
	return false, nil
}
func (m *mockEventRepo) CreateResult(result *eventdomain.Result) error { return nil }

func (m *mockEventRepo) FindOpenEvents(userID int64, at time.Time) ([]*eventdomain.Event, error) {
	if m.findOpenEventsFn != nil {
		return m.findOpenEventsFn(userID, at)
	}
	return nil, nil
}

type recordedResult struct {
	userID    int64
	eventID   string
	segmentID int64
	elapsed   uint32
}

type mockEventUsecase struct {
	addResultFn func(userID int64, eventID string, segmentID int64, elapsed uint32) error
}

func (m *mockEventUsecase) CreateEvent(ctx context.Context, req *eventdto.CreateEventRequest) (*eventdomain.Event, error) {
	return nil, nil
}
func (m *mockEventUsecase) GetAllEvents() ([]*eventdomain.Event, error)        { return nil, nil }
func (m *mockEventUsecase) GetEvent(id string) (*eventdomain.Event, error)     { return nil, nil }
func (m *mockEventUsecase) AddCompetitors(eventID string, ids []int64) error   { return nil }
func (m *mockEventUsecase) RemoveCompetitors(eventID string, ids []int64) error { return nil }
func (m *mockEventUsecase) AddSegments(ctx context.Context, actorID int64, eventID string, ids []int64) error {
	return nil
}
func (m *mockEventUsecase) RemoveSegments(eventID string, ids []int64) error { return nil }

func (m *mockEventUsecase) AddResult(userID int64, eventID string, segmentID int64, elapsed uint32) error {
	if m.addResultFn != nil {
		return m.addResultFn(userID, eventID, segmentID, elapsed)
	}
	return nil
}

type stubTokens struct {
	token string
	err   error
}

func (s *stubTokens) GetValidAccessToken(ctx context.Context, userID int64) (string, error) {
	return s.token, s.err
}

// activityServer serves one detailed activity with efforts on segments 10 and 99.
func activityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activities/123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 123,
			"name": "morning ride",
			"segment_efforts": [
				{"elapsed_time": 95, "segment": {"id": 10, "name": "climb"}},
				{"elapsed_time": 240, "segment": {"id": 99, "name": "elsewhere"}}
			]
		}`))
	}))
}

func notification() *webhookdto.ActivityNotification {
	return &webhookdto.ActivityNotification{
		ObjectType: "activity",
		ObjectID:   123,
		AspectType: "create",
		OwnerID:    2,
		EventTime:  time.Now().Unix(),
	}
}

func openEvents(segmentIDs ...int64) []*eventdomain.Event {
	segments := make([]eventdomain.Segment, 0, len(segmentIDs))
	for _, id := range segmentIDs {
		segments = append(segments, eventdomain.Segment{ID: id})
	}
	return []*eventdomain.Event{{ID: "e1", Segments: segments}}
}

func TestHandleActivityEvent_RecordsMatchingEfforts(t *testing.T) {
	server := activityServer(t)
	defer server.Close()

	var recorded []recordedResult
	events := &mockEventUsecase{addResultFn: func(userID int64, eventID string, segmentID int64, elapsed uint32) error {
		recorded = append(recorded, recordedResult{userID, eventID, segmentID, elapsed})
		return nil
	}}
	users := &mockUserRepo{findByIDFn: func(id int64) (*authdomain.User, error) {
		return &authdomain.User{ID: id}, nil
	}}
	repo := &mockEventRepo{findOpenEventsFn: func(int64, time.Time) ([]*eventdomain.Event, error) {
		return openEvents(10), nil
	}}
	ingestor := usecase.NewIngestor(users, repo, &stubTokens{token: "tok"}, strava.NewClient(server.URL), events)

	if err := ingestor.HandleActivityEvent(context.Background(), notification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("expected exactly one result, got %d: %+v", len(recorded), recorded)
	}
	want := recordedResult{userID: 2, eventID: "e1", segmentID: 10, elapsed: 95}
	if recorded[0] != want {
		t.Fatalf("recorded %+v, want %+v", recorded[0], want)
	}
}

func TestHandleActivityEvent_IgnoresNonCreateNotifications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("filtered notification must not reach Strava")
	}))
	defer server.Close()

	users := &mockUserRepo{findByIDFn: func(int64) (*authdomain.User, error) {
		t.Error("filtered notification must not look up the user")
		return nil, nil
	}}
	ingestor := usecase.NewIngestor(users, &mockEventRepo{}, &stubTokens{}, strava.NewClient(server.URL), &mockEventUsecase{})

	update := notification()
	update.AspectType = "update"
	if err := ingestor.HandleActivityEvent(context.Background(), update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	athlete := notification()
	athlete.ObjectType = "athlete"
	if err := ingestor.HandleActivityEvent(context.Background(), athlete); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleActivityEvent_UnknownAthlete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown athlete must not reach Strava")
	}))
	defer server.Close()

	ingestor := usecase.NewIngestor(&mockUserRepo{}, &mockEventRepo{}, &stubTokens{}, strava.NewClient(server.URL), &mockEventUsecase{})

	if err := ingestor.HandleActivityEvent(context.Background(), notification()); err != nil {
		t.Fatalf("unknown athlete must be a no-op, got %v", err)
	}
}

func TestHandleActivityEvent_NoOpenEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("activity must not be fetched when no event is open")
	}))
	defer server.Close()

	users := &mockUserRepo{findByIDFn: func(id int64) (*authdomain.User, error) {
		return &authdomain.User{ID: id}, nil
	}}
	tokens := &stubTokens{err: fmt.Errorf("token must not be requested")}
	ingestor := usecase.NewIngestor(users, &mockEventRepo{}, tokens, strava.NewClient(server.URL), &mockEventUsecase{})

	if err := ingestor.HandleActivityEvent(context.Background(), notification()); err != nil {
		t.Fatalf("no open events must be a no-op, got %v", err)
	}
}

func TestHandleActivityEvent_DuplicateResultSwallowed(t *testing.T) {
	server := activityServer(t)
	defer server.Close()

	events := &mockEventUsecase{addResultFn: func(int64, string, int64, uint32) error {
		return fmt.Errorf("already recorded: %w", apperr.ErrItemExists)
	}}
	users := &mockUserRepo{findByIDFn: func(id int64) (*authdomain.User, error) {
		return &authdomain.User{ID: id}, nil
	}}
	repo := &mockEventRepo{findOpenEventsFn: func(int64, time.Time) ([]*eventdomain.Event, error) {
		return openEvents(10), nil
	}}
	ingestor := usecase.NewIngestor(users, repo, &stubTokens{token: "tok"}, strava.NewClient(server.URL), events)

	if err := ingestor.HandleActivityEvent(context.Background(), notification()); err != nil {
		t.Fatalf("duplicate results must not surface, got %v", err)
	}
}

func TestHandleActivityEvent_RecordingFailureIsolated(t *testing.T) {
	server := activityServer(t)
	defer server.Close()

	var recorded []recordedResult
	events := &mockEventUsecase{addResultFn: func(userID int64, eventID string, segmentID int64, elapsed uint32) error {
		if eventID == "broken" {
			return fmt.Errorf("storage down")
		}
		recorded = append(recorded, recordedResult{userID, eventID, segmentID, elapsed})
		return nil
	}}
	users := &mockUserRepo{findByIDFn: func(id int64) (*authdomain.User, error) {
		return &authdomain.User{ID: id}, nil
	}}
	repo := &mockEventRepo{findOpenEventsFn: func(int64, time.Time) ([]*eventdomain.Event, error) {
		return []*eventdomain.Event{
			{ID: "broken", Segments: []eventdomain.Segment{{ID: 10}}},
			{ID: "e2", Segments: []eventdomain.Segment{{ID: 10}}},
		}, nil
	}}
	ingestor := usecase.NewIngestor(users, repo, &stubTokens{token: "tok"}, strava.NewClient(server.URL), events)

	err := ingestor.HandleActivityEvent(context.Background(), notification())
	if err == nil {
		t.Fatal("expected an error reporting the failed recording")
	}
	if len(recorded) != 1 || recorded[0].eventID != "e2" {
		t.Fatalf("healthy event must still get its result, got %+v", recorded)
	}
}
