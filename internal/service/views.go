package service

import (
	"time"

	"github.com/dom/kpitter/internal/domain"
)

// UserView is the read-only projection of a user exposed to callers. It
// carries a post count instead of the post collection itself.
type UserView struct {
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Posts    int     `json:"posts"`
}

// PostView is the read-only projection of a post. IsLiked reflects the viewing
// user and is always false for unauthenticated viewers.
type PostView struct {
	ID        string    `json:"id"`
	Author    UserView  `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserView projects a user entity onto its view.
func NewUserView(user *domain.User) UserView {
	view := UserView{
		Username: user.Username,
		Posts:    user.PostCount,
	}
	if user.FullName != "" {
		fullName := user.FullName
		view.FullName = &fullName
	}
	return view
}

// NewPostView projects a post entity onto its view as seen by viewerUsername.
// An empty viewerUsername means the viewer is unauthenticated.
func NewPostView(post *domain.Post, viewerUsername string) PostView {
	return PostView{
		ID:        post.ID,
		Author:    NewUserView(&post.Author),
		Content:   post.Content,
		Likes:     len(post.Likes),
		IsLiked:   viewerUsername != "" && post.LikedBy(viewerUsername),
		CreatedAt: post.CreatedAt,
	}
}
