package service

import (
	"context"
	"errors"
	"strings"

	dom "Pulse/internal/domain"
	"Pulse/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxPostContent = 2000

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrEmptyContent   = errors.New("post content is required")
	ErrContentTooLong = errors.New("post content cannot exceed 2000 characters")
	ErrNotPostAuthor  = errors.New("you can only modify your own posts")
)

// PostService owns post lifecycle, content rules and the feed query.
type PostService struct {
	repo repo.PostRepo
}

func NewPostService(r repo.PostRepo) *PostService {
	return &PostService{repo: r}
}

// validateContent checks the untrimmed length bound first, then that something
// is left after trimming, and returns the trimmed value to store.
func validateContent(content string) (string, error) {
	if len([]rune(content)) > maxPostContent {
		return "", ErrContentTooLong
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	return trimmed, nil
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, content string) (dom.Post, error) {
	trimmed, err := validateContent(content)
	if err != nil {
		return dom.Post{}, err
	}
	return s.repo.Create(ctx, authorID, trimmed)
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (dom.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, ErrPostNotFound
		}
		return dom.Post{}, err
	}
	return p, nil
}

func (s *PostService) ByAuthor(ctx context.Context, authorID uuid.UUID, page, limit int) ([]dom.Post, int64, error) {
	skip := (page - 1) * limit
	posts, err := s.repo.ListByAuthor(ctx, authorID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) All(ctx context.Context, page, limit int) ([]dom.Post, int64, error) {
	skip := (page - 1) * limit
	posts, err := s.repo.ListAll(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Feed returns posts by userID and by everyone userID follows, newest-first.
func (s *PostService) Feed(ctx context.Context, userID uuid.UUID, page, limit int) ([]dom.Post, int64, error) {
	skip := (page - 1) * limit
	posts, err := s.repo.Feed(ctx, userID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountFeed(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update changes a post's content. Only the author may update; a nil content
// pointer leaves the stored content as is but still bumps updated_at.
func (s *PostService) Update(ctx context.Context, id, requesterID uuid.UUID, content *string) (dom.Post, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, ErrPostNotFound
		}
		return dom.Post{}, err
	}
	if existing.AuthorID != requesterID {
		return dom.Post{}, ErrNotPostAuthor
	}

	next := existing.Content
	if content != nil {
		next, err = validateContent(*content)
		if err != nil {
			return dom.Post{}, err
		}
	}

	p, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, ErrPostNotFound
		}
		return dom.Post{}, err
	}
	return p, nil
}

// Delete removes a post. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	if existing.AuthorID != requesterID {
		return ErrNotPostAuthor
	}
	return s.repo.Delete(ctx, id)
}
