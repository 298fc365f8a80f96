package handlers

import (
	"errors"
	"net/http"

	"Pulse/internal/auth"
	"Pulse/internal/dto"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

// PostHandler handles post lifecycle and the feed.
type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePostRequest  true  "Post body"
// @Success      201   {object}  dto.Envelope{data=dto.PostResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	post, err := h.svc.Create(c.Request.Context(), p.ID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) || errors.Is(err, service.ErrContentTooLong) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "failed to create post")
		return
	}
	success(c, http.StatusCreated, "Post created successfully", postToResponse(post))
}

// GetAll godoc
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 50)"
// @Success      200    {object}  dto.Envelope{data=dto.PostListResponse}
// @Router       /posts [get]
func (h *PostHandler) GetAll(c *gin.Context) {
	page, limit := parsePagination(c)
	posts, total, err := h.svc.All(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list posts")
		return
	}
	success(c, http.StatusOK, "Success", dto.PostListResponse{
		Posts:      postsToResponses(posts),
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Feed godoc
// @Summary      Personalized feed: own posts plus posts of followed users
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 50)"
// @Success      200    {object}  dto.Envelope{data=dto.PostListResponse}
// @Router       /posts/feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	page, limit := parsePagination(c)
	posts, total, err := h.svc.Feed(c.Request.Context(), p.ID, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load feed")
		return
	}
	success(c, http.StatusOK, "Success", dto.PostListResponse{
		Posts:      postsToResponses(posts),
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// GetByID godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID (UUID)"
// @Success      200  {object}  dto.Envelope{data=dto.PostResponse}
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		fail(c, http.StatusInternalServerError, "lookup failed")
		return
	}
	success(c, http.StatusOK, "Success", postToResponse(post))
}

// GetUserPosts godoc
// @Summary      List posts by a given author
// @Tags         posts
// @Produce      json
// @Param        id     path      string  true   "Author ID (UUID)"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 10, max 50)"
// @Success      200    {object}  dto.Envelope{data=dto.PostListResponse}
// @Failure      400    {object}  dto.Envelope
// @Router       /posts/user/{id} [get]
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	authorID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	posts, total, err := h.svc.ByAuthor(c.Request.Context(), authorID, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list posts")
		return
	}
	success(c, http.StatusOK, "Success", dto.PostListResponse{
		Posts:      postsToResponses(posts),
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Update godoc
// @Summary      Update own post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Post ID (UUID)"
// @Param        body  body      dto.UpdatePostRequest  true  "Partial update"
// @Success      200   {object}  dto.Envelope{data=dto.PostResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	post, err := h.svc.Update(c.Request.Context(), id, p.ID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			fail(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrNotPostAuthor):
			fail(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrContentTooLong):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, "update failed")
		}
		return
	}
	success(c, http.StatusOK, "Post updated successfully", postToResponse(post))
}

// Delete godoc
// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (UUID)"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
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
		case errors.Is(err, service.ErrPostNotFound):
			fail(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrNotPostAuthor):
			fail(c, http.StatusForbidden, err.Error())
		default:
			fail(c, http.StatusInternalServerError, "delete failed")
		}
		return
	}
	success(c, http.StatusOK, "Post deleted successfully", nil)
}
