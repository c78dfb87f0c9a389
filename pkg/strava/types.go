package strava

// Athlete is the Strava athlete profile as returned by GET /athlete
// and embedded in the OAuth token exchange response.
type Athlete struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Sex       string `json:"sex"`
	Profile   string `json:"profile"`
}

// Segment is the detailed segment representation from GET /segments/{id}.
type Segment struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Distance      float64 `json:"distance"`
	ElevationGain float64 `json:"total_elevation_gain"`
}

// SegmentEffort is one attempt at a segment inside an activity.
type SegmentEffort struct {
	ElapsedTime uint32  `json:"elapsed_time"`
	StartDate   string  `json:"start_date"`
	Segment     Segment `json:"segment"`
}

// Activity is the detailed activity from GET /activities/{id}, including
// the per-segment efforts the webhook pipeline matches against events.
type Activity struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	StartDate      string          `json:"start_date"`
	Private        bool            `json:"private"`
	Manual         bool            `json:"manual"`
	SegmentEfforts []SegmentEffort `json:"segment_efforts"`
}

// TokenResponse is the body of a successful POST to the Strava OAuth token
// endpoint. The athlete object is only present on the initial code exchange,
// not on refresh.
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresAt    int64    `json:"expires_at"`
	Athlete      *Athlete `json:"athlete,omitempty"`
}
