package dto

import "time"

// FollowResponse is returned when an edge is created.
type FollowResponse struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FollowerResponse is one entry of a followers listing.
type FollowerResponse struct {
	ID         string          `json:"id"`
	FollowerID string          `json:"followerId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Follower   ProfileResponse `json:"follower"`
}

// FollowingResponse is one entry of a following listing.
type FollowingResponse struct {
	ID          string          `json:"id"`
	FollowingID string          `json:"followingId"`
	CreatedAt   time.Time       `json:"createdAt"`
	Following   ProfileResponse `json:"following"`
}

type FollowerListResponse struct {
	Followers  []FollowerResponse `json:"followers"`
	Pagination Pagination         `json:"pagination"`
}

type FollowingListResponse struct {
	Following  []FollowingResponse `json:"following"`
	Pagination Pagination          `json:"pagination"`
}

// FollowStatusResponse is the payload of GET /users/:id/status.
type FollowStatusResponse struct {
	IsFollowing bool `json:"isFollowing"`
}
