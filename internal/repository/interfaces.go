package repository

import (
	"context"
	"time"

	"github.com/dom/kpitter/internal/domain"
)

// UserRepository owns user records keyed by canonical (lowercase) username.
type UserRepository interface {
	// Create inserts a new user. The availability check and the insert are a
	// single atomic step; a duplicate canonical username yields
	// domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) error
	// GetByUsername returns a snapshot of the user, or domain.ErrUserNotFound.
	// Lookup is case-insensitive.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// IsAvailable reports whether no user exists under the canonical form of
	// the given username.
	IsAvailable(ctx context.Context, username string) (bool, error)
}

// PostRepository owns post records. Every post belongs to exactly one author;
// lookups always require the author's username and fail for ids that only
// exist under a different author.
type PostRepository interface {
	// Create allocates a fresh id, attaches the post to the author's
	// newest-first collection and returns a snapshot of it. Returns
	// domain.ErrAuthorNotFound if the author does not exist.
	Create(ctx context.Context, authorUsername, content string, createdAt time.Time) (*domain.Post, error)
	// GetByID returns a snapshot of the post, or domain.ErrPostNotFound.
	// Both username and id are matched case-insensitively.
	GetByID(ctx context.Context, authorUsername, postID string) (*domain.Post, error)
	// ListByAuthor returns snapshots of a window of the author's posts in
	// newest-first order, or domain.ErrUserNotFound.
	ListByAuthor(ctx context.Context, authorUsername string, offset, limit int) ([]*domain.Post, error)
	// CountByAuthor returns the size of the author's post collection, or
	// domain.ErrUserNotFound.
	CountByAuthor(ctx context.Context, authorUsername string) (int, error)
	// AddLike records that likerUsername liked the post. Liking an already
	// liked post is a no-op. Returns domain.ErrPostNotFound if the
	// (author, id) pair does not resolve.
	AddLike(ctx context.Context, authorUsername, postID, likerUsername string) error
	// RemoveLike removes likerUsername from the post's like set. Removing an
	// absent like is a no-op. Returns domain.ErrPostNotFound if the
	// (author, id) pair does not resolve.
	RemoveLike(ctx context.Context, authorUsername, postID, likerUsername string) error
}

type Repositories struct {
	User UserRepository
	Post PostRepository
}
