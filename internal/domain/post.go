package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a text post. AuthorID is immutable after creation.
// Author is the joined public projection of the owning user.
type Post struct {
	ID        uuid.UUID
	Content   string
	AuthorID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	Author Profile
}
