package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "Pulse/internal/domain"
	"Pulse/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is a shared in-memory backing store for the three fake repos.
// It mimics the Postgres contract the services rely on: lookups return
// pgx.ErrNoRows on absence, constraint violations surface as *pgconn.PgError,
// and deleting a user cascades to posts and follow edges.
type memStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]dom.User
	posts   []dom.Post
	follows []dom.Follow
	clock   time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uuid.UUID]dom.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so newest-first ordering
// is deterministic.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) profile(id uuid.UUID) dom.Profile {
	return s.users[id].PublicProfile()
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

type memUserRepo struct{ s *memStore }

var _ repo.UserRepo = (*memUserRepo)(nil)

func (r *memUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.users {
		if ex.Email == u.Email {
			return dom.User{}, uniqueViolation("users_email_key")
		}
		if ex.Username == u.Username {
			return dom.User{}, uniqueViolation("users_username_key")
		}
	}
	u.ID = uuid.New()
	now := r.s.tick()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetWithStats(_ context.Context, id uuid.UUID) (dom.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return dom.UserStats{}, pgx.ErrNoRows
	}
	st := dom.UserStats{User: u}
	for _, f := range r.s.follows {
		if f.FollowingID == id {
			st.FollowersCount++
		}
		if f.FollowerID == id {
			st.FollowingCount++
		}
	}
	for _, p := range r.s.posts {
		if p.AuthorID == id {
			st.PostsCount++
		}
	}
	return st, nil
}

func (r *memUserRepo) Update(_ context.Context, id uuid.UUID, patch repo.UserPatch) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	if patch.FirstName != nil {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = patch.LastName
	}
	if patch.Bio != nil {
		u.Bio = patch.Bio
	}
	if patch.Avatar != nil {
		u.Avatar = patch.Avatar
	}
	u.UpdatedAt = r.s.tick()
	r.s.users[id] = u
	return u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	posts := r.s.posts[:0]
	for _, p := range r.s.posts {
		if p.AuthorID != id {
			posts = append(posts, p)
		}
	}
	r.s.posts = posts
	follows := r.s.follows[:0]
	for _, f := range r.s.follows {
		if f.FollowerID != id && f.FollowingID != id {
			follows = append(follows, f)
		}
	}
	r.s.follows = follows
	return nil
}

func (r *memUserRepo) matches(u dom.User, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(u.Username), q) {
		return true
	}
	if u.FirstName != nil && strings.Contains(strings.ToLower(*u.FirstName), q) {
		return true
	}
	if u.LastName != nil && strings.Contains(strings.ToLower(*u.LastName), q) {
		return true
	}
	return false
}

func (r *memUserRepo) Search(_ context.Context, q string, skip, take int) ([]dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hits []dom.User
	for _, u := range r.s.users {
		if r.matches(u, q) {
			hits = append(hits, u)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	return page(hits, skip, take), nil
}

func (r *memUserRepo) CountSearch(_ context.Context, q string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if r.matches(u, q) {
			n++
		}
	}
	return n, nil
}

type memPostRepo struct{ s *memStore }

var _ repo.PostRepo = (*memPostRepo)(nil)

func (r *memPostRepo) Create(_ context.Context, authorID uuid.UUID, content string) (dom.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[authorID]; !ok {
		return dom.Post{}, fkViolation("posts_author_id_fkey")
	}
	now := r.s.tick()
	p := dom.Post{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    r.s.profile(authorID),
	}
	r.s.posts = append(r.s.posts, p)
	return p, nil
}

func (r *memPostRepo) GetByID(_ context.Context, id uuid.UUID) (dom.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return dom.Post{}, pgx.ErrNoRows
}

func (r *memPostRepo) list(filter func(dom.Post) bool, skip, take int) []dom.Post {
	var hits []dom.Post
	for _, p := range r.s.posts {
		if filter(p) {
			hits = append(hits, p)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	return page(hits, skip, take)
}

func (r *memPostRepo) count(filter func(dom.Post) bool) int64 {
	var n int64
	for _, p := range r.s.posts {
		if filter(p) {
			n++
		}
	}
	return n
}

func (r *memPostRepo) ListByAuthor(_ context.Context, authorID uuid.UUID, skip, take int) ([]dom.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(p dom.Post) bool { return p.AuthorID == authorID }, skip, take), nil
}

func (r *memPostRepo) CountByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.count(func(p dom.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memPostRepo) ListAll(_ context.Context, skip, take int) ([]dom.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(dom.Post) bool { return true }, skip, take), nil
}

func (r *memPostRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.count(func(dom.Post) bool { return true }), nil
}

func (r *memPostRepo) inFeed(userID uuid.UUID) func(dom.Post) bool {
	followed := make(map[uuid.UUID]bool)
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			followed[f.FollowingID] = true
		}
	}
	return func(p dom.Post) bool { return p.AuthorID == userID || followed[p.AuthorID] }
}

func (r *memPostRepo) Feed(_ context.Context, userID uuid.UUID, skip, take int) ([]dom.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(r.inFeed(userID), skip, take), nil
}

func (r *memPostRepo) CountFeed(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.count(r.inFeed(userID)), nil
}

func (r *memPostRepo) Update(_ context.Context, id uuid.UUID, content string) (dom.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.posts {
		if p.ID == id {
			p.Content = content
			p.UpdatedAt = r.s.tick()
			p.Author = r.s.profile(p.AuthorID)
			r.s.posts[i] = p
			return p, nil
		}
	}
	return dom.Post{}, pgx.ErrNoRows
}

func (r *memPostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.posts {
		if p.ID == id {
			r.s.posts = append(r.s.posts[:i], r.s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

type memFollowRepo struct{ s *memStore }

var _ repo.FollowRepo = (*memFollowRepo)(nil)

func (r *memFollowRepo) Create(_ context.Context, followerID, followingID uuid.UUID) (dom.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[followerID]; !ok {
		return dom.Follow{}, fkViolation("follows_follower_id_fkey")
	}
	if _, ok := r.s.users[followingID]; !ok {
		return dom.Follow{}, fkViolation("follows_following_id_fkey")
	}
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return dom.Follow{}, uniqueViolation("follows_follower_following_key")
		}
	}
	f := dom.Follow{
		ID:          uuid.New(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   r.s.tick(),
	}
	r.s.follows = append(r.s.follows, f)
	return f, nil
}

func (r *memFollowRepo) Delete(_ context.Context, followerID, followingID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			r.s.follows = append(r.s.follows[:i], r.s.follows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memFollowRepo) Exists(_ context.Context, followerID, followingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFollowRepo) Followers(_ context.Context, userID uuid.UUID, skip, take int) ([]dom.FollowerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hits []dom.FollowerEntry
	for _, f := range r.s.follows {
		if f.FollowingID == userID {
			hits = append(hits, dom.FollowerEntry{
				ID:         f.ID,
				FollowerID: f.FollowerID,
				CreatedAt:  f.CreatedAt,
				Follower:   r.s.profile(f.FollowerID),
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	return page(hits, skip, take), nil
}

func (r *memFollowRepo) CountFollowers(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, f := range r.s.follows {
		if f.FollowingID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) Following(_ context.Context, userID uuid.UUID, skip, take int) ([]dom.FollowingEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hits []dom.FollowingEntry
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			hits = append(hits, dom.FollowingEntry{
				ID:          f.ID,
				FollowingID: f.FollowingID,
				CreatedAt:   f.CreatedAt,
				Following:   r.s.profile(f.FollowingID),
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	return page(hits, skip, take), nil
}

func (r *memFollowRepo) CountFollowing(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) Counts(ctx context.Context, userID uuid.UUID) (dom.FollowCounts, error) {
	followers, _ := r.CountFollowers(ctx, userID)
	following, _ := r.CountFollowing(ctx, userID)
	return dom.FollowCounts{Followers: followers, Following: following}, nil
}

func page[T any](list []T, skip, take int) []T {
	if skip >= len(list) {
		return nil
	}
	list = list[skip:]
	if take < len(list) {
		list = list[:take]
	}
	return list
}

// fixture wires the three services over one shared store.
type fixture struct {
	store   *memStore
	users   *UserService
	posts   *PostService
	follows *FollowService
}

func newFixture() *fixture {
	s := newMemStore()
	users := NewUserService(&memUserRepo{s: s}, 4)
	return &fixture{
		store:   s,
		users:   users,
		posts:   NewPostService(&memPostRepo{s: s}),
		follows: NewFollowService(&memFollowRepo{s: s}, &memUserRepo{s: s}),
	}
}

func (f *fixture) mustUser(email, username string) dom.User {
	u, err := f.users.Create(context.Background(), CreateUserInput{
		Email:    email,
		Username: username,
		Password: "correct-horse",
	})
	if err != nil {
		panic(err)
	}
	return u
}
