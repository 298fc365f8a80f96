package repo

import (
	"context"

	dom "Pulse/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FollowRepo provides follow-edge persistence. Edges are created and deleted,
// never updated.
type FollowRepo interface {
	Create(ctx context.Context, followerID, followingID uuid.UUID) (dom.Follow, error)
	// Delete removes the edge and reports how many rows went away.
	Delete(ctx context.Context, followerID, followingID uuid.UUID) (int64, error)
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Followers(ctx context.Context, userID uuid.UUID, skip, take int) ([]dom.FollowerEntry, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	Following(ctx context.Context, userID uuid.UUID, skip, take int) ([]dom.FollowingEntry, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	Counts(ctx context.Context, userID uuid.UUID) (dom.FollowCounts, error)
}

type PGFollowRepo struct {
	db *pgxpool.Pool
}

func NewPGFollowRepo(db *pgxpool.Pool) *PGFollowRepo {
	return &PGFollowRepo{db: db}
}

func (r *PGFollowRepo) Create(ctx context.Context, followerID, followingID uuid.UUID) (dom.Follow, error) {
	query := `
		INSERT INTO follows (id, follower_id, following_id)
		VALUES ($1, $2, $3)
		RETURNING id, follower_id, following_id, created_at`
	var f dom.Follow
	err := r.db.QueryRow(ctx, query, uuid.New(), followerID, followingID).Scan(
		&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt,
	)
	return f, err
}

func (r *PGFollowRepo) Delete(ctx context.Context, followerID, followingID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGFollowRepo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID).Scan(&exists)
	return exists, err
}

// Followers lists edges pointing at userID joined with each follower's profile, newest-first.
func (r *PGFollowRepo) Followers(ctx context.Context, userID uuid.UUID, skip, take int) ([]dom.FollowerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.follower_id, f.created_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		OFFSET $2 LIMIT $3`, userID, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.FollowerEntry
	for rows.Next() {
		var e dom.FollowerEntry
		if err := rows.Scan(&e.ID, &e.FollowerID, &e.CreatedAt,
			&e.Follower.ID, &e.Follower.Username, &e.Follower.FirstName,
			&e.Follower.LastName, &e.Follower.Avatar); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PGFollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID).Scan(&n)
	return n, err
}

// Following lists edges leaving userID joined with each followed user's profile, newest-first.
func (r *PGFollowRepo) Following(ctx context.Context, userID uuid.UUID, skip, take int) ([]dom.FollowingEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.following_id, f.created_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		OFFSET $2 LIMIT $3`, userID, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.FollowingEntry
	for rows.Next() {
		var e dom.FollowingEntry
		if err := rows.Scan(&e.ID, &e.FollowingID, &e.CreatedAt,
			&e.Following.ID, &e.Following.Username, &e.Following.FirstName,
			&e.Following.LastName, &e.Following.Avatar); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PGFollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID).Scan(&n)
	return n, err
}

// Counts runs the two aggregates as independent queries. An unknown user
// yields zeros rather than an error.
func (r *PGFollowRepo) Counts(ctx context.Context, userID uuid.UUID) (dom.FollowCounts, error) {
	var c dom.FollowCounts
	var err error
	if c.Followers, err = r.CountFollowers(ctx, userID); err != nil {
		return dom.FollowCounts{}, err
	}
	if c.Following, err = r.CountFollowing(ctx, userID); err != nil {
		return dom.FollowCounts{}, err
	}
	return c, nil
}
