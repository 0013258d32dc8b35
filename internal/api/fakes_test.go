package api

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/chem1sto/test-moscow-metro/internal/models"
	"github.com/chem1sto/test-moscow-metro/internal/repositories"
)

// memDB mimics the PostgreSQL schema: unique users.email, posts.user_id
// foreign key and cascading delete.
type memDB struct {
	mu       sync.Mutex
	users    map[uint]models.User
	posts    map[uint]models.Post
	nextUser uint
	nextPost uint
}

func newMemDB() *memDB {
	return &memDB{users: map[uint]models.User{}, posts: map[uint]models.Post{}}
}

func page[T any](rows map[uint]T, offset, limit int, keep func(T) bool) []T {
	ids := make([]uint, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0)
	skipped := 0
	for _, id := range ids {
		row := rows[id]
		if keep != nil && !keep(row) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, row)
	}
	return out
}

type memUsers struct{ db *memDB }

func (m memUsers) List(_ context.Context, offset, limit int) ([]models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return page(m.db.users, offset, limit, nil), nil
}

func (m memUsers) Get(_ context.Context, id uint) (*models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	user, ok := m.db.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (m memUsers) Exists(_ context.Context, id uint) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	_, ok := m.db.users[id]
	return ok, nil
}

func (m memUsers) EmailTaken(_ context.Context, email string, exceptID uint) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.emailTakenLocked(email, exceptID), nil
}

func (m memUsers) emailTakenLocked(email string, exceptID uint) bool {
	for id, user := range m.db.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

func (m memUsers) Create(_ context.Context, user *models.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.emailTakenLocked(user.Email, 0) {
		return repositories.ErrDuplicateEmail
	}
	m.db.nextUser++
	user.ID = m.db.nextUser
	m.db.users[user.ID] = *user
	return nil
}

// Update copies only the named columns onto the stored row, like a gorm
// Select(columns).Updates(user).
func (m memUsers) Update(_ context.Context, user *models.User, columns ...string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	row, ok := m.db.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if len(columns) == 0 {
		row = *user
	}
	for _, col := range columns {
		switch col {
		case "first_name":
			row.FirstName = user.FirstName
		case "second_name":
			row.SecondName = user.SecondName
		case "patronymic":
			row.Patronymic = user.Patronymic
		case "email":
			row.Email = user.Email
		case "address":
			row.Address = user.Address
		case "photo_url":
			row.PhotoURL = user.PhotoURL
		default:
			panic("unknown users column " + col)
		}
	}
	if m.emailTakenLocked(row.Email, row.ID) {
		return repositories.ErrDuplicateEmail
	}
	m.db.users[row.ID] = row
	return nil
}

func (m memUsers) Delete(_ context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.db.users, id)
	for postID, post := range m.db.posts {
		if post.UserID == id {
			delete(m.db.posts, postID)
		}
	}
	return nil
}

type memPosts struct{ db *memDB }

func (m memPosts) List(_ context.Context, offset, limit int, userID uint) ([]models.Post, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return page(m.db.posts, offset, limit, func(p models.Post) bool {
		return userID == 0 || p.UserID == userID
	}), nil
}

func (m memPosts) Get(_ context.Context, id uint) (*models.Post, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	post, ok := m.db.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m memPosts) Create(_ context.Context, post *models.Post) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[post.UserID]; !ok {
		return repositories.ErrUserNotFound
	}
	m.db.nextPost++
	post.ID = m.db.nextPost
	m.db.posts[post.ID] = *post
	return nil
}

func (m memPosts) Update(_ context.Context, post *models.Post, columns ...string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	row, ok := m.db.posts[post.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if len(columns) == 0 {
		row = *post
	}
	for _, col := range columns {
		switch col {
		case "user_id":
			row.UserID = post.UserID
		case "title":
			row.Title = post.Title
		case "content":
			row.Content = post.Content
		default:
			panic("unknown posts column " + col)
		}
	}
	if _, ok := m.db.users[row.UserID]; !ok {
		return repositories.ErrUserNotFound
	}
	m.db.posts[row.ID] = row
	return nil
}

func (m memPosts) Delete(_ context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.db.posts, id)
	return nil
}

// racyUsers never sees a duplicate in the pre-check, as when two creates
// with the same email run concurrently.
type racyUsers struct{ memUsers }

func (racyUsers) EmailTaken(context.Context, string, uint) (bool, error) {
	return false, nil
}

// brokenUsers fails every read the way a dropped database connection would.
type brokenUsers struct{ memUsers }

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func (brokenUsers) Get(context.Context, uint) (*models.User, error) {
	return nil, errConnRefused
}

func (brokenUsers) List(context.Context, int, int) ([]models.User, error) {
	return nil, errConnRefused
}

// staleUsers hands out the row as it was on the first read of each id,
// as when another request writes to the user between a handler's read and
// its write.
type staleUsers struct {
	memUsers
	mu     sync.Mutex
	frozen map[uint]models.User
}

func (s *staleUsers) Get(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.frozen[id]; ok {
		return &user, nil
	}
	user, err := s.memUsers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.frozen[id] = *user
	return user, nil
}

// failingPhotos rejects every write.
type failingPhotos struct{}

func (failingPhotos) Save(context.Context, repositories.Upload) (string, error) {
	return "", errors.New("no space left on device")
}

func (failingPhotos) Delete(context.Context, string) error {
	return nil
}
