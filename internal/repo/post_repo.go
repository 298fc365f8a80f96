package repo

import (
	"context"

	dom "Pulse/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepo provides post persistence. Every read joins the author's public
// profile fields so the service never needs a second lookup.
type PostRepo interface {
	Create(ctx context.Context, authorID uuid.UUID, content string) (dom.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, skip, take int) ([]dom.Post, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	ListAll(ctx context.Context, skip, take int) ([]dom.Post, error)
	CountAll(ctx context.Context) (int64, error)
	Feed(ctx context.Context, userID uuid.UUID, skip, take int) ([]dom.Post, error)
	CountFeed(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, id uuid.UUID, content string) (dom.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const postSelect = `
	SELECT p.id, p.content, p.author_id, p.created_at, p.updated_at,
	       u.id, u.username, u.first_name, u.last_name, u.avatar
	FROM posts p
	JOIN users u ON u.id = p.author_id`

type PGPostRepo struct {
	db *pgxpool.Pool
}

func NewPGPostRepo(db *pgxpool.Pool) *PGPostRepo {
	return &PGPostRepo{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (dom.Post, error) {
	var p dom.Post
	err := row.Scan(&p.ID, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.FirstName, &p.Author.LastName, &p.Author.Avatar)
	return p, err
}

func (r *PGPostRepo) queryPosts(ctx context.Context, query string, args ...any) ([]dom.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create inserts the post and returns it with the author projection joined.
func (r *PGPostRepo) Create(ctx context.Context, authorID uuid.UUID, content string) (dom.Post, error) {
	query := `
		WITH ins AS (
			INSERT INTO posts (id, content, author_id)
			VALUES ($1, $2, $3)
			RETURNING id, content, author_id, created_at, updated_at
		)
		SELECT ins.id, ins.content, ins.author_id, ins.created_at, ins.updated_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM ins JOIN users u ON u.id = ins.author_id`
	return scanPost(r.db.QueryRow(ctx, query, uuid.New(), content, authorID))
}

func (r *PGPostRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Post, error) {
	return scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
}

func (r *PGPostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, skip, take int) ([]dom.Post, error) {
	return r.queryPosts(ctx, postSelect+`
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
		OFFSET $2 LIMIT $3`, authorID, skip, take)
}

func (r *PGPostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}

func (r *PGPostRepo) ListAll(ctx context.Context, skip, take int) ([]dom.Post, error) {
	return r.queryPosts(ctx, postSelect+`
		ORDER BY p.created_at DESC
		OFFSET $1 LIMIT $2`, skip, take)
}

func (r *PGPostRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

// Feed returns posts by the user or by anyone the user follows, newest-first.
// The union is inclusive: the user's own posts are always part of the feed.
func (r *PGPostRepo) Feed(ctx context.Context, userID uuid.UUID, skip, take int) ([]dom.Post, error) {
	return r.queryPosts(ctx, postSelect+`
		WHERE p.author_id = $1
		   OR EXISTS (
			SELECT 1 FROM follows f
			WHERE f.follower_id = $1 AND f.following_id = p.author_id
		   )
		ORDER BY p.created_at DESC
		OFFSET $2 LIMIT $3`, userID, skip, take)
}

func (r *PGPostRepo) CountFeed(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM posts p
		WHERE p.author_id = $1
		   OR EXISTS (
			SELECT 1 FROM follows f
			WHERE f.follower_id = $1 AND f.following_id = p.author_id
		   )`, userID).Scan(&n)
	return n, err
}

func (r *PGPostRepo) Update(ctx context.Context, id uuid.UUID, content string) (dom.Post, error) {
	query := `
		WITH upd AS (
			UPDATE posts SET content = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, content, author_id, created_at, updated_at
		)
		SELECT upd.id, upd.content, upd.author_id, upd.created_at, upd.updated_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM upd JOIN users u ON u.id = upd.author_id`
	return scanPost(r.db.QueryRow(ctx, query, id, content))
}

func (r *PGPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
