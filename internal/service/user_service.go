package service

import (
	"context"
	"errors"
	"fmt"

	dom "Pulse/internal/domain"
	"Pulse/internal/repo"
	"Pulse/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password;
	// the two must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotAccountOwner    = errors.New("you can only modify your own account")
)

// CreateUserInput is the data needed to open an account.
type CreateUserInput struct {
	Email     string
	Username  string
	Password  string
	FirstName *string
	LastName  *string
}

// UserService owns account lifecycle and credential checks.
type UserService struct {
	repo       repo.UserRepo
	bcryptCost int
}

// NewUserService returns a new UserService hashing passwords at the given bcrypt cost.
func NewUserService(r repo.UserRepo, bcryptCost int) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: r, bcryptCost: bcryptCost}
}

// Create registers a new account. Email and username conflicts are reported
// separately; the unique constraints are the authoritative check, the
// pre-lookups only give the common case a friendlier path.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (dom.User, error) {
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return dom.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return dom.User{}, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return dom.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, dom.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	})
	if err != nil {
		// Lost the race between the pre-check and the insert.
		if utils.IsPGUniqueViolationOn(err, "email") {
			return dom.User{}, ErrEmailTaken
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID returns the user or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// GetWithStats returns the user plus follower/following/post counts.
func (s *UserService) GetWithStats(ctx context.Context, id uuid.UUID) (dom.UserStats, error) {
	st, err := s.repo.GetWithStats(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.UserStats{}, ErrUserNotFound
		}
		return dom.UserStats{}, err
	}
	return st, nil
}

// Update applies a partial profile patch. Only the account owner may update;
// the ownership check lives here, not in the HTTP layer.
func (s *UserService) Update(ctx context.Context, id, requesterID uuid.UUID, patch repo.UserPatch) (dom.User, error) {
	if id != requesterID {
		return dom.User{}, ErrNotAccountOwner
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// Delete removes the account; posts and follow edges cascade in storage.
func (s *UserService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	if id != requesterID {
		return ErrNotAccountOwner
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Search returns a page of users matching q plus the real total.
// No match is an empty page, never an error.
func (s *UserService) Search(ctx context.Context, q string, page, limit int) ([]dom.User, int64, error) {
	skip := (page - 1) * limit
	users, err := s.repo.Search(ctx, q, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountSearch(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ValidateCredentials checks email and password. A missing account and a bad
// password produce the same error.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}
