package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	authdomain "stravarace-backend/internal/auth/domain"
	"stravarace-backend/internal/auth/repository"
	"stravarace-backend/pkg/apperr"
	"stravarace-backend/pkg/config"
	"stravarace-backend/pkg/strava"
)

// refreshSkew is how long before expiry a token is already treated as stale.
const refreshSkew = 10 * time.Second

// TokenManager hands out valid Strava access tokens for any user, refreshing
// and persisting the stored credential when it is about to expire.
//
// The check-then-refresh sequence is not serialized per user: two concurrent
// callers may both attempt a refresh and Strava may reject the second one, so
// ErrTokenRefreshFailed can be transient.
type TokenManager struct {
	tokenRepo  repository.TokenRepository
	httpClient *http.Client
	config     *config.Config
}

func NewTokenManager(tokenRepo repository.TokenRepository, cfg *config.Config) *TokenManager {
	return &TokenManager{
		tokenRepo:  tokenRepo,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		config:     cfg,
	}
}

// GetValidAccessToken returns the user's access token, refreshing it first
// when less than refreshSkew of its lifetime remains.
func (m *TokenManager) GetValidAccessToken(ctx context.Context, userID int64) (string, error) {
	token, err := m.tokenRepo.FindByUserID(userID)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", fmt.Errorf("user %d: %w", userID, apperr.ErrCredentialNotFound)
	}

	if time.Now().Before(token.ExpiresAt.Add(-refreshSkew)) {
		return token.AccessToken, nil
	}

	refreshed, err := m.refresh(ctx, token)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

func (m *TokenManager) refresh(ctx context.Context, token *authdomain.Token) (*authdomain.Token, error) {
	query := url.Values{}
	query.Set("client_id", m.config.StravaClientID)
	query.Set("client_secret", m.config.StravaClientSecret)
	query.Set("refresh_token", token.RefreshToken)
	query.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.StravaTokenURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrTokenRefreshFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", apperr.ErrTokenRefreshFailed, resp.StatusCode)
	}

	var tokenResp strava.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("%w: unreadable response: %v", apperr.ErrTokenRefreshFailed, err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token in response", apperr.ErrTokenRefreshFailed)
	}

	token.AccessToken = tokenResp.AccessToken
	token.RefreshToken = tokenResp.RefreshToken
	token.ExpiresAt = time.Unix(tokenResp.ExpiresAt, 0)

	// Persist before handing the token out; a refresh Strava accepted but we
	// failed to store would strand the old refresh token.
	if err := m.tokenRepo.Save(token); err != nil {
		return nil, err
	}
	return token, nil
}
