package dto

import "time"

// CreateEventRequest describes a new race. CreatorID is filled from the
// authenticated user by the delivery layer, not from the request body.
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	SegmentIDs  []int64   `json:"segment_ids"`
	CreatorID   int64     `json:"-"`
}

type ModifyCompetitorsRequest struct {
	Competitors []int64 `json:"competitors" binding:"required"`
}

type ModifySegmentsRequest struct {
	Segments []int64 `json:"segments" binding:"required"`
}

type AddResultRequest struct {
	SegmentID int64  `json:"segment_id" binding:"required"`
	Time      uint32 `json:"time" binding:"required"`
}
