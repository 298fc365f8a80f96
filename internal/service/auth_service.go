package service

import (
	"context"
	"errors"

	"Pulse/internal/auth"
	dom "Pulse/internal/domain"

	"github.com/google/uuid"
)

// AuthService composes the user service with the token manager to implement
// register, login, profile fetch and token refresh.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenManager
}

func NewAuthService(users *UserService, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User  dom.User
	Token string
}

func (s *AuthService) issue(u dom.User) (AuthResult, error) {
	token, err := s.tokens.Issue(auth.Principal{ID: u.ID, Email: u.Email, Username: u.Username})
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

// Register creates the account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, in CreateUserInput) (AuthResult, error) {
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(u)
}

// Login validates credentials and signs a token. A failed check surfaces as
// ErrInvalidCredentials regardless of whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.users.ValidateCredentials(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(u)
}

// Profile returns the stats-augmented user for the authenticated principal.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (dom.UserStats, error) {
	return s.users.GetWithStats(ctx, userID)
}

// Refresh verifies the old token and issues a new one with the same claim
// shape. Malformed, expired, badly-signed and deleted-subject tokens all come
// back as auth.ErrInvalidToken; callers cannot tell them apart.
func (s *AuthService) Refresh(ctx context.Context, oldToken string) (AuthResult, error) {
	p, err := s.tokens.Verify(oldToken)
	if err != nil {
		return AuthResult{}, auth.ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return AuthResult{}, auth.ErrInvalidToken
		}
		return AuthResult{}, err
	}
	return s.issue(u)
}
