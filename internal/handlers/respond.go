package handlers

import (
	"net/http"
	"strconv"

	dom "Pulse/internal/domain"
	"Pulse/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// success writes the uniform SUCCESS envelope.
func success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, dto.Envelope{Status: dto.StatusSuccess, Message: message, Data: data})
}

// fail writes the uniform ERROR envelope.
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Envelope{Status: dto.StatusError, Message: message})
}

// parsePagination reads page and limit query params with defaults 1 and 10.
// Limit is clamped to 50 on every listing endpoint; garbage falls back to defaults.
func parsePagination(c *gin.Context) (page, limit int) {
	page = defaultPage
	if v, err := strconv.Atoi(c.DefaultQuery("page", "")); err == nil && v >= 1 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v >= 1 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// parseUUIDParam parses a canonical UUID path parameter or fails the request with 400.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userStatsToResponse(s dom.UserStats) dto.UserStatsResponse {
	return dto.UserStatsResponse{
		UserResponse:   userToResponse(s.User),
		FollowersCount: s.FollowersCount,
		FollowingCount: s.FollowingCount,
		PostsCount:     s.PostsCount,
	}
}

func usersToResponses(list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i := range list {
		out[i] = userToResponse(list[i])
	}
	return out
}

func profileToResponse(p dom.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID.String(),
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Avatar:    p.Avatar,
	}
}

func postToResponse(p dom.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:        p.ID.String(),
		Content:   p.Content,
		AuthorID:  p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    profileToResponse(p.Author),
	}
}

func postsToResponses(list []dom.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, len(list))
	for i := range list {
		out[i] = postToResponse(list[i])
	}
	return out
}
