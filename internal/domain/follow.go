package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed follower -> following edge.
// The (FollowerID, FollowingID) pair is unique; edges are never updated in place.
type Follow struct {
	ID          uuid.UUID
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
	CreatedAt   time.Time
}

// FollowerEntry is an edge joined with the follower's public profile,
// as returned by follower listings.
type FollowerEntry struct {
	ID         uuid.UUID
	FollowerID uuid.UUID
	CreatedAt  time.Time
	Follower   Profile
}

// FollowingEntry is an edge joined with the followed user's public profile.
type FollowingEntry struct {
	ID          uuid.UUID
	FollowingID uuid.UUID
	CreatedAt   time.Time
	Following   Profile
}

// FollowCounts holds the two independent aggregate counts for a user.
type FollowCounts struct {
	Followers int64
	Following int64
}
