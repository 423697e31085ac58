package memory

import (
	"context"
	"encoding/hex"
	"sort"
	"time"

	"github.com/dom/kpitter/internal/domain"
	"github.com/google/uuid"
)

type PostRepo struct {
	store *Store
}

// newPostID allocates an opaque unique post id: 32 lowercase hex characters,
// already in canonical form.
func newPostID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Create attaches a new post to the front of the author's collection and
// re-sorts it newest-first. Ties on createdAt keep the most recently inserted
// post first.
func (r *PostRepo) Create(ctx context.Context, authorUsername, content string, createdAt time.Time) (*domain.Post, error) {
	// Allocated outside the lock; uuid reads entropy.
	post := &postRecord{
		id:        newPostID(),
		content:   content,
		likes:     make(map[string]struct{}),
		createdAt: createdAt,
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	author, ok := r.store.users[domain.CanonicalUsername(authorUsername)]
	if !ok {
		return nil, domain.ErrAuthorNotFound
	}

	author.posts = append([]*postRecord{post}, author.posts...)
	sort.SliceStable(author.posts, func(i, j int) bool {
		return author.posts[i].createdAt.After(author.posts[j].createdAt)
	})

	return post.snapshot(author), nil
}

func (r *PostRepo) GetByID(ctx context.Context, authorUsername, postID string) (*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	author, post, err := r.find(authorUsername, postID)
	if err != nil {
		return nil, err
	}
	return post.snapshot(author), nil
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorUsername string, offset, limit int) ([]*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	author, ok := r.store.users[domain.CanonicalUsername(authorUsername)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(author.posts) || limit <= 0 {
		return []*domain.Post{}, nil
	}
	end := offset + limit
	if end > len(author.posts) {
		end = len(author.posts)
	}

	posts := make([]*domain.Post, 0, end-offset)
	for _, rec := range author.posts[offset:end] {
		posts = append(posts, rec.snapshot(author))
	}
	return posts, nil
}

func (r *PostRepo) CountByAuthor(ctx context.Context, authorUsername string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	author, ok := r.store.users[domain.CanonicalUsername(authorUsername)]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return len(author.posts), nil
}

func (r *PostRepo) AddLike(ctx context.Context, authorUsername, postID, likerUsername string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, post, err := r.find(authorUsername, postID)
	if err != nil {
		return err
	}
	post.likes[domain.CanonicalUsername(likerUsername)] = struct{}{}
	return nil
}

func (r *PostRepo) RemoveLike(ctx context.Context, authorUsername, postID, likerUsername string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, post, err := r.find(authorUsername, postID)
	if err != nil {
		return err
	}
	delete(post.likes, domain.CanonicalUsername(likerUsername))
	return nil
}

// find resolves an (author, post id) pair. An id that exists under a different
// author resolves to ErrPostNotFound, same as an id that does not exist at
// all. Must be called with the store lock held.
func (r *PostRepo) find(authorUsername, postID string) (*userRecord, *postRecord, error) {
	author, ok := r.store.users[domain.CanonicalUsername(authorUsername)]
	if !ok {
		return nil, nil, domain.ErrPostNotFound
	}
	id := domain.CanonicalPostID(postID)
	for _, post := range author.posts {
		if post.id == id {
			return author, post, nil
		}
	}
	return nil, nil, domain.ErrPostNotFound
}
