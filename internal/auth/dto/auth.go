package dto

import authdomain "stravarace-backend/internal/auth/domain"

// SignInRequest carries the authorization code from the Strava OAuth redirect.
type SignInRequest struct {
	Code string `json:"code" binding:"required"`
}

// SignInResponse is the app's own session token plus the signed-in user.
type SignInResponse struct {
	AccessToken string           `json:"access_token"`
	User        *authdomain.User `json:"user"`
}
