package handlers

import (
	"errors"
	"net/http"

	"Pulse/internal/auth"
	"Pulse/internal/dto"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login, profile and token refresh.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func authResultToResponse(r service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		User: dto.AuthUser{
			ID:        r.User.ID.String(),
			Email:     r.User.Email,
			Username:  r.User.Username,
			FirstName: r.User.FirstName,
			LastName:  r.User.LastName,
		},
		Token: r.Token,
	}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account data"
// @Success      201   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.Register(c.Request.Context(), service.CreateUserInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		// Uniqueness conflicts are 400 by convention of this API, not 409.
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrUsernameTaken) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "registration failed")
		return
	}
	success(c, http.StatusCreated, "User registered successfully", authResultToResponse(result))
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		fail(c, http.StatusInternalServerError, "login failed")
		return
	}
	success(c, http.StatusOK, "Login successful", authResultToResponse(result))
}

// Profile godoc
// @Summary      Get the authenticated user's profile with stats
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.UserStatsResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "access token is required")
		return
	}
	stats, err := h.svc.Profile(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusUnauthorized, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	success(c, http.StatusOK, "Success", userStatsToResponse(stats))
}

// Refresh godoc
// @Summary      Exchange a valid token for a fresh one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Refresh token is required")
		return
	}
	result, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			fail(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		fail(c, http.StatusInternalServerError, "token refresh failed")
		return
	}
	success(c, http.StatusOK, "Token refreshed successfully", authResultToResponse(result))
}
