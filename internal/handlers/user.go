package handlers

import (
	"errors"
	"net/http"

	"Pulse/internal/auth"
	"Pulse/internal/dto"
	"Pulse/internal/repo"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user lookup, search and account mutation.
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Search godoc
// @Summary      Search users by username or name
// @Tags         users
// @Produce      json
// @Param        search  query     string  false  "Substring to match (case-insensitive)"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 50)"
// @Success      200     {object}  dto.Envelope{data=dto.SearchUsersResponse}
// @Router       /users [get]
func (h *UserHandler) Search(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.svc.Search(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "search failed")
		return
	}
	success(c, http.StatusOK, "Success", dto.SearchUsersResponse{
		Users:      usersToResponses(users),
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Me godoc
// @Summary      Get the authenticated user with stats
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.UserStatsResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	stats, err := h.svc.GetWithStats(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "lookup failed")
		return
	}
	success(c, http.StatusOK, "Success", userStatsToResponse(stats))
}

// GetByID godoc
// @Summary      Get a user by ID with stats
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID (UUID)"
// @Success      200  {object}  dto.Envelope{data=dto.UserStatsResponse}
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.svc.GetWithStats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "lookup failed")
		return
	}
	success(c, http.StatusOK, "Success", userStatsToResponse(stats))
}

// GetByUsername godoc
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      404       {object}  dto.Envelope
// @Router       /users/username/{username} [get]
func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "lookup failed")
		return
	}
	success(c, http.StatusOK, "Success", userToResponse(u))
}

// Update godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User ID (UUID)"
// @Param        body  body      dto.UpdateUserRequest  true  "Partial profile"
// @Success      200   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, p.ID, repo.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Avatar:    req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAccountOwner):
			fail(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			fail(c, http.StatusInternalServerError, "update failed")
		}
		return
	}
	success(c, http.StatusOK, "Profile updated successfully", userToResponse(u))
}

// Delete godoc
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID (UUID)"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, p.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAccountOwner):
			fail(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			fail(c, http.StatusInternalServerError, "delete failed")
		}
		return
	}
	success(c, http.StatusOK, "Account deleted successfully", nil)
}
