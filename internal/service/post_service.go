package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/repository"
)

// PageSize is the fixed number of posts per page in listings.
const PageSize = 10

// PostService handles post creation, listing and like/unlike.
type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost publishes a new post for authorUsername. The boundary only calls
// this for an already-authenticated author, so domain.ErrAuthorNotFound
// signals an internal inconsistency rather than a user-facing condition.
func (s *PostService) CreatePost(ctx context.Context, authorUsername, content string) (*PostView, error) {
	if n := utf8.RuneCountInString(content); n == 0 || n > domain.MaxContentLength {
		return nil, domain.ErrInvalidContent
	}

	post, err := s.posts.Create(ctx, authorUsername, content, time.Now())
	if err != nil {
		return nil, err
	}

	view := NewPostView(post, authorUsername)
	return &view, nil
}

// ListPosts returns one page of username's posts, newest first, as seen by
// viewerUsername (empty for unauthenticated viewers). Unauthenticated viewers
// always get page 1: they only ever see the newest ten posts, with no deeper
// pagination. Pages are 1-indexed; page <= 0 is rejected.
func (s *PostService) ListPosts(ctx context.Context, username, viewerUsername string, page int) ([]PostView, error) {
	if page <= 0 {
		return nil, domain.ErrInvalidPage
	}
	if viewerUsername == "" {
		page = 1
	}

	posts, err := s.posts.ListByAuthor(ctx, username, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, NewPostView(post, viewerUsername))
	}
	return views, nil
}

// GetPost returns the view of a single post, or domain.ErrPostNotFound. An id
// that only exists under a different author is indistinguishable from one that
// does not exist at all.
func (s *PostService) GetPost(ctx context.Context, username, postID, viewerUsername string) (*PostView, error) {
	post, err := s.posts.GetByID(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	view := NewPostView(post, viewerUsername)
	return &view, nil
}

// LikePost records a like by viewerUsername. Liking an already liked post is a
// no-op.
func (s *PostService) LikePost(ctx context.Context, username, postID, viewerUsername string) error {
	return s.posts.AddLike(ctx, username, postID, viewerUsername)
}

// UnlikePost removes viewerUsername's like. Unliking a post that was never
// liked is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, username, postID, viewerUsername string) error {
	return s.posts.RemoveLike(ctx, username, postID, viewerUsername)
}
