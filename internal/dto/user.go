package dto

import "time"

// UpdateUserRequest is the JSON body for PUT /users/:id. All fields optional.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=50"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	Avatar    *string `json:"avatar" binding:"omitempty,max=255"`
}

// UserResponse is the outward user projection. There is no password field here
// on purpose: the digest must never be serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserStatsResponse is a user plus aggregate counts.
type UserStatsResponse struct {
	UserResponse
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
	PostsCount     int64 `json:"postsCount"`
}

// ProfileResponse is the public author/counterpart projection.
type ProfileResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// SearchUsersResponse is the payload of GET /users.
type SearchUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
