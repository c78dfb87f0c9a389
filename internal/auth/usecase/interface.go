package usecase

import (
	"context"

	authdomain "stravarace-backend/internal/auth/domain"
	authdto "stravarace-backend/internal/auth/dto"
)

// AuthUsecase handles Strava sign-in and the app's own API sessions.
type AuthUsecase interface {
	StravaSignIn(ctx context.Context, req *authdto.SignInRequest) (*authdto.SignInResponse, error)
	ValidateToken(tokenString string) (*authdomain.User, error)
	DeleteUser(id int64) error
}

// AccessTokenProvider yields a valid Strava bearer token for a user,
// refreshing the stored credential when it is about to expire.
type AccessTokenProvider interface {
	GetValidAccessToken(ctx context.Context, userID int64) (string, error)
}
