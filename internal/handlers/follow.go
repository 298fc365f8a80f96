package handlers

import (
	"errors"
	"net/http"

	"Pulse/internal/auth"
	dom "Pulse/internal/domain"
	"Pulse/internal/dto"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowHandler handles the social-graph endpoints mounted under /users/:id.
type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow godoc
// @Summary      Follow a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User to follow (UUID)"
// @Success      201  {object}  dto.Envelope{data=dto.FollowResponse}
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /users/{id}/follow [post]
func (h *FollowHandler) Follow(c *gin.Context) {
	followingID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	f, err := h.svc.Follow(c.Request.Context(), p.ID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrAlreadyFollowing):
			fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			fail(c, http.StatusNotFound, "User to follow not found")
		default:
			fail(c, http.StatusInternalServerError, "follow failed")
		}
		return
	}
	success(c, http.StatusCreated, "User followed successfully", dto.FollowResponse{
		ID:          f.ID.String(),
		FollowerID:  f.FollowerID.String(),
		FollowingID: f.FollowingID.String(),
		CreatedAt:   f.CreatedAt,
	})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User to unfollow (UUID)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Router       /users/{id}/unfollow [delete]
func (h *FollowHandler) Unfollow(c *gin.Context) {
	followingID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	if err := h.svc.Unfollow(c.Request.Context(), p.ID, followingID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfUnfollow), errors.Is(err, service.ErrNotFollowing):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, "unfollow failed")
		}
		return
	}
	success(c, http.StatusOK, "User unfollowed successfully", nil)
}

// Followers godoc
// @Summary      List a user's followers
// @Tags         follows
// @Produce      json
// @Param        id     path      string  true   "User ID (UUID)"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 10, max 50)"
// @Success      200    {object}  dto.Envelope{data=dto.FollowerListResponse}
// @Failure      404    {object}  dto.Envelope
// @Router       /users/{id}/followers [get]
func (h *FollowHandler) Followers(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	entries, total, err := h.svc.Followers(c.Request.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to list followers")
		return
	}
	success(c, http.StatusOK, "Success", dto.FollowerListResponse{
		Followers:  followersToResponses(entries),
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Following godoc
// @Summary      List the users a user follows
// @Tags         follows
// @Produce      json
// @Param        id     path      string  true   "User ID (UUID)"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 10, max 50)"
// @Success      200    {object}  dto.Envelope{data=dto.FollowingListResponse}
// @Failure      404    {object}  dto.Envelope
// @Router       /users/{id}/following [get]
func (h *FollowHandler) Following(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	entries, total, err := h.svc.Following(c.Request.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to list following")
		return
	}
	success(c, http.StatusOK, "Success", dto.FollowingListResponse{
		Following:  followingToResponses(entries),
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Status godoc
// @Summary      Whether the authenticated user follows the given user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID (UUID)"
// @Success      200  {object}  dto.Envelope{data=dto.FollowStatusResponse}
// @Router       /users/{id}/status [get]
func (h *FollowHandler) Status(c *gin.Context) {
	followingID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	isFollowing, err := h.svc.IsFollowing(c.Request.Context(), p.ID, followingID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "status check failed")
		return
	}
	success(c, http.StatusOK, "Success", dto.FollowStatusResponse{IsFollowing: isFollowing})
}

func followersToResponses(list []dom.FollowerEntry) []dto.FollowerResponse {
	out := make([]dto.FollowerResponse, len(list))
	for i, e := range list {
		out[i] = dto.FollowerResponse{
			ID:         e.ID.String(),
			FollowerID: e.FollowerID.String(),
			CreatedAt:  e.CreatedAt,
			Follower:   profileToResponse(e.Follower),
		}
	}
	return out
}

func followingToResponses(list []dom.FollowingEntry) []dto.FollowingResponse {
	out := make([]dto.FollowingResponse, len(list))
	for i, e := range list {
		out[i] = dto.FollowingResponse{
			ID:          e.ID.String(),
			FollowingID: e.FollowingID.String(),
			CreatedAt:   e.CreatedAt,
			Following:   profileToResponse(e.Following),
		}
	}
	return out
}
