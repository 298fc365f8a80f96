package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity for an account.
// PasswordHash never leaves the service layer; response DTOs have no field for it.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Bio          *string
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStats is a user together with aggregate counts, fetched in one query.
type UserStats struct {
	User
	FollowersCount int64
	FollowingCount int64
	PostsCount     int64
}

// Profile is the public projection of a user embedded in posts and follow listings.
type Profile struct {
	ID        uuid.UUID
	Username  string
	FirstName *string
	LastName  *string
	Avatar    *string
}

// PublicProfile returns the public projection of u.
func (u User) PublicProfile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}
