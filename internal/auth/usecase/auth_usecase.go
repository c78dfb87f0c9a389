package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "stravarace-backend/internal/auth/domain"
	authdto "stravarace-backend/internal/auth/dto"
	"stravarace-backend/internal/auth/repository"
	"stravarace-backend/pkg/apperr"
	"stravarace-backend/pkg/config"
	"stravarace-backend/pkg/strava"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	stravaClient *strava.Client
	oauthConfig  *oauth2.Config
	config       *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, stravaClient *strava.Client, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		stravaClient: stravaClient,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.StravaClientID,
			ClientSecret: cfg.StravaClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.StravaAuthURL,
				TokenURL: cfg.StravaTokenURL,
			},
		},
		config: cfg,
	}
}

// StravaSignIn exchanges the authorization code, upserts the athlete and the
// credential, and issues an app session token. Re-sign-in refreshes both the
// profile and the stored credential.
func (u *authUsecase) StravaSignIn(ctx context.Context, req *authdto.SignInRequest) (*authdto.SignInResponse, error) {
	oauthToken, err := u.oauthConfig.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", apperr.ErrAPICommunication, err)
	}

	athlete, err := u.stravaClient.GetAthlete(ctx, oauthToken.AccessToken)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		ID:        athlete.ID,
		Username:  athlete.Username,
		FirstName: athlete.FirstName,
		LastName:  athlete.LastName,
		AvatarURL: athlete.Profile,
		Sex:       athlete.Sex,
	}
	if err := u.userRepo.Upsert(user); err != nil {
		return nil, err
	}

	credential := &authdomain.Token{
		UserID:       user.ID,
		AccessToken:  oauthToken.AccessToken,
		RefreshToken: oauthToken.RefreshToken,
		ExpiresAt:    oauthToken.Expiry,
	}
	if err := u.tokenRepo.Save(credential); err != nil {
		return nil, err
	}

	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &authdto.SignInResponse{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(int64(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (u *authUsecase) DeleteUser(id int64) error {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	return u.userRepo.Delete(id)
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}
