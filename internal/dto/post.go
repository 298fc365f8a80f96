package dto

import "time"

// CreatePostRequest is the JSON body for POST /posts. Content length rules
// (non-empty after trim, <=2000 untrimmed) are enforced in the service.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest is the JSON body for PUT /posts/:id. Nil content = keep.
type UpdatePostRequest struct {
	Content *string `json:"content"`
}

type PostResponse struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	AuthorID  string          `json:"authorId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Author    ProfileResponse `json:"author"`
}

type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}
