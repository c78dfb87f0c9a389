package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stravarace-backend/pkg/apperr"
)

// Client talks to the Strava v3 REST API. Access tokens are supplied per call
// by the caller; the client holds no credential state of its own.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// GetSegment fetches one segment by its Strava id.
func (c *Client) GetSegment(ctx context.Context, accessToken string, segmentID int64) (*Segment, error) {
	var segment Segment
	if err := c.get(ctx, accessToken, fmt.Sprintf("/segments/%d", segmentID), &segment); err != nil {
		return nil, err
	}
	if segment.ID == 0 {
		return nil, fmt.Errorf("segment %d: %w", segmentID, apperr.ErrNotFound)
	}
	return &segment, nil
}

// GetStarredSegments lists the segments starred by the token's athlete.
func (c *Client) GetStarredSegments(ctx context.Context, accessToken string) ([]Segment, error) {
	var segments []Segment
	if err := c.get(ctx, accessToken, "/segments/starred", &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// GetActivity fetches the detailed activity, segment efforts included.
func (c *Client) GetActivity(ctx context.Context, accessToken string, activityID int64) (*Activity, error) {
	var activity Activity
	if err := c.get(ctx, accessToken, fmt.Sprintf("/activities/%d", activityID), &activity); err != nil {
		return nil, err
	}
	if activity.ID == 0 {
		return nil, fmt.Errorf("activity %d: %w", activityID, apperr.ErrNotFound)
	}
	return &activity, nil
}

// GetAthlete fetches the profile of the token's athlete.
func (c *Client) GetAthlete(ctx context.Context, accessToken string) (*Athlete, error) {
	var athlete Athlete
	if err := c.get(ctx, accessToken, "/athlete", &athlete); err != nil {
		return nil, err
	}
	if athlete.ID == 0 {
		return nil, fmt.Errorf("athlete: %w", apperr.ErrNotFound)
	}
	return &athlete, nil
}

// SubscribeWebhook registers the callback URL with Strava's push subscription
// endpoint so activity events start flowing.
func (c *Client) SubscribeWebhook(ctx context.Context, clientID, clientSecret, callbackURL, verifyToken string) error {
	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("callback_url", callbackURL)
	form.Set("verify_token", verifyToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/push_subscriptions", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrAPICommunication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: subscribe returned status %d", apperr.ErrAPICommunication, resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrAPICommunication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, apperr.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s returned status %d", apperr.ErrAPICommunication, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: unreadable body: %w", path, apperr.ErrNotFound)
	}
	return nil
}
