package repository

import authdomain "stravarace-backend/internal/auth/domain"

// UserRepository persists Strava athletes. Find methods return (nil, nil)
// when the row does not exist.
type UserRepository interface {
	Upsert(user *authdomain.User) error
	FindByID(id int64) (*authdomain.User, error)
	ExistingIDs(ids []int64) ([]int64, error)
	Delete(id int64) error
}

// TokenRepository persists the per-user Strava OAuth credential.
type TokenRepository interface {
	Save(token *authdomain.Token) error
	FindByUserID(userID int64) (*authdomain.Token, error)
}
