package domain

import (
	"time"

	authdomain "stravarace-backend/internal/auth/domain"
)

// Segment is a locally cached Strava segment. Rows are written once by the
// resolver on cache miss and never updated or deleted afterwards.
type Segment struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name"`
	Distance  float64 `json:"distance"`
	Elevation float64 `json:"elevation"`
}

// Event is a time-boxed race over a fixed set of segments. Related rows are
// referenced by id only; the repository assembles the slices below when an
// operation needs them, gorm never navigates them.
type Event struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	CreatorID    int64     `json:"creator_id" gorm:"index;not null"`
	CreationDate time.Time `json:"creation_date"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`

	Competitors []authdomain.User `json:"competitors,omitempty" gorm:"-"`
	Segments    []Segment         `json:"segments,omitempty" gorm:"-"`
	Results     []Result          `json:"results,omitempty" gorm:"-"`
}

// Started reports whether the event is locked for membership changes.
func (e *Event) Started(now time.Time) bool {
	return !now.Before(e.StartDate)
}

// OpenAt reports whether t falls strictly inside the event window.
func (e *Event) OpenAt(t time.Time) bool {
	return e.StartDate.Before(t) && e.EndDate.After(t)
}

// EventCompetitor is an enrollment row, one per competitor per event.
type EventCompetitor struct {
	EventID string `json:"event_id" gorm:"primaryKey"`
	UserID  int64  `json:"user_id" gorm:"primaryKey"`
}

// EventSegment attaches a segment to an event.
type EventSegment struct {
	EventID   string `json:"event_id" gorm:"primaryKey"`
	SegmentID int64  `json:"segment_id" gorm:"primaryKey"`
}

// Result is one competitor's elapsed time on one segment within one event.
// The unique index backstops the engine's best-effort duplicate pre-check
// against concurrent identical requests.
type Result struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"uniqueIndex:idx_results_event_segment_user"`
	SegmentID int64     `json:"segment_id" gorm:"uniqueIndex:idx_results_event_segment_user"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_results_event_segment_user"`
	Time      uint32    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}
