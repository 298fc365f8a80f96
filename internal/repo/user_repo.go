package repo

import (
	"context"

	dom "Pulse/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserPatch is a partial profile update; nil fields are left unchanged.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Avatar    *string
}

// UserRepo provides user persistence. Lookups return pgx.ErrNoRows on absence;
// mapping that to a domain error is the service's job.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetWithStats(ctx context.Context, id uuid.UUID) (dom.UserStats, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (dom.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q string, skip, take int) ([]dom.User, error)
	CountSearch(ctx context.Context, q string) (int64, error)
}

const userColumns = `id, email, username, password_hash, first_name, last_name, bio, avatar, created_at, updated_at`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Bio, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new user with an app-generated ID and returns it.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, bio, avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		uuid.New(), u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Bio, u.Avatar))
}

func (r *PGUserRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetWithStats returns the user and its three aggregate counts in one round trip.
func (r *PGUserRepo) GetWithStats(ctx context.Context, id uuid.UUID) (dom.UserStats, error) {
	query := `
		SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name,
		       u.bio, u.avatar, u.created_at, u.updated_at,
		       (SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id),
		       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id),
		       (SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id)
		FROM users u WHERE u.id = $1`
	var s dom.UserStats
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Email, &s.Username, &s.PasswordHash, &s.FirstName, &s.LastName,
		&s.Bio, &s.Avatar, &s.CreatedAt, &s.UpdatedAt,
		&s.FollowersCount, &s.FollowingCount, &s.PostsCount,
	)
	return s, err
}

// Update applies a partial patch; nil fields keep the stored value.
func (r *PGUserRepo) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (dom.User, error) {
	query := `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			bio        = COALESCE($4, bio),
			avatar     = COALESCE($5, avatar),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		id, patch.FirstName, patch.LastName, patch.Bio, patch.Avatar))
}

// Delete removes the user; posts and follow edges go with it via FK cascade.
func (r *PGUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// Search does a case-insensitive substring match over username and names.
// An empty query lists everyone, newest-first.
func (r *PGUserRepo) Search(ctx context.Context, q string, skip, take int) ([]dom.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%'
		   OR first_name ILIKE '%' || $1 || '%'
		   OR last_name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`, q, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PGUserRepo) CountSearch(ctx context.Context, q string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%'
		   OR first_name ILIKE '%' || $1 || '%'
		   OR last_name ILIKE '%' || $1 || '%'`, q).Scan(&n)
	return n, err
}
