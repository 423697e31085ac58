// Package memory implements the repositories on an in-process store. State is
// process-scoped and lost on restart.
package memory

import (
	"sync"
	"time"

	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/repository"
)

// Store holds all user and post records behind a single coarse lock. Low
// expected contention makes one lock preferable to finer-grained locking.
// Readers receive deep snapshots taken under the lock, so no live record ever
// escapes the store.
type Store struct {
	mu    sync.RWMutex
	users map[string]*userRecord // keyed by canonical username
}

type userRecord struct {
	username     string // original casing, for display
	passwordHash string
	fullName     string
	posts        []*postRecord // newest first
}

type postRecord struct {
	id        string // canonical lowercase
	content   string
	likes     map[string]struct{} // canonical usernames
	createdAt time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*userRecord),
	}
}

// NewRepositories wires user and post repositories over a shared store.
func NewRepositories() *repository.Repositories {
	store := NewStore()
	return &repository.Repositories{
		User: &UserRepo{store: store},
		Post: &PostRepo{store: store},
	}
}

// Ensure interfaces are met.
var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.PostRepository = (*PostRepo)(nil)

// snapshot must be called with the store lock held.
func (u *userRecord) snapshot() domain.User {
	return domain.User{
		Username:     u.username,
		PasswordHash: u.passwordHash,
		FullName:     u.fullName,
		PostCount:    len(u.posts),
	}
}

// snapshot must be called with the store lock held.
func (p *postRecord) snapshot(author *userRecord) *domain.Post {
	likes := make([]string, 0, len(p.likes))
	for liker := range p.likes {
		likes = append(likes, liker)
	}
	return &domain.Post{
		ID:        p.id,
		Author:    author.snapshot(),
		Content:   p.content,
		Likes:     likes,
		CreatedAt: p.createdAt,
	}
}
