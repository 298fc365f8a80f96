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
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrSelfUnfollow     = errors.New("cannot unfollow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

// FollowService owns the social-graph edge lifecycle.
type FollowService struct {
	follows repo.FollowRepo
	users   repo.UserRepo
}

func NewFollowService(follows repo.FollowRepo, users repo.UserRepo) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow creates the edge follower -> following. The unique pair constraint is
// the authoritative duplicate check; the pre-check only shortcuts the common case.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) (dom.Follow, error) {
	if followerID == followingID {
		return dom.Follow{}, ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Follow{}, ErrUserNotFound
		}
		return dom.Follow{}, fmt.Errorf("check user: %w", err)
	}
	exists, err := s.follows.Exists(ctx, followerID, followingID)
	if err != nil {
		return dom.Follow{}, err
	}
	if exists {
		return dom.Follow{}, ErrAlreadyFollowing
	}

	f, err := s.follows.Create(ctx, followerID, followingID)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Follow{}, ErrAlreadyFollowing
		}
		// Follower or followee disappeared between the check and the insert.
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Follow{}, ErrUserNotFound
		}
		return dom.Follow{}, fmt.Errorf("create follow: %w", err)
	}
	return f, nil
}

// Unfollow removes the edge. The delete's affected-row count is the existence
// check; no race window between a lookup and the delete.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return ErrSelfUnfollow
	}
	n, err := s.follows.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers returns a page of the user's followers with the real total.
func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID, page, limit int) ([]dom.FollowerEntry, int64, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	skip := (page - 1) * limit
	entries, err := s.follows.Followers(ctx, userID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Following returns a page of users the subject follows with the real total.
func (s *FollowService) Following(ctx context.Context, userID uuid.UUID, page, limit int) ([]dom.FollowingEntry, int64, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	skip := (page - 1) * limit
	entries, err := s.follows.Following(ctx, userID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// IsFollowing reports whether the edge exists. Absence is false, never an error.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.follows.Exists(ctx, followerID, followingID)
}

// Counts returns follower/following counts via two independent aggregates.
// An unknown user yields zeros; there is deliberately no existence check.
func (s *FollowService) Counts(ctx context.Context, userID uuid.UUID) (dom.FollowCounts, error) {
	return s.follows.Counts(ctx, userID)
}
