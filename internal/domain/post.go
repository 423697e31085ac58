package domain

import (
	"strings"
	"time"
)

// Post is a snapshot of a single post together with its author and the set of
// usernames that liked it. Likes holds canonical (lowercase) usernames.
type Post struct {
	ID        string
	Author    User
	Content   string
	Likes     []string
	CreatedAt time.Time
}

// MaxContentLength is the upper bound on post content, in runes.
const MaxContentLength = 140

// LikedBy reports whether the given user has liked the post.
func (p *Post) LikedBy(username string) bool {
	name := CanonicalUsername(username)
	for _, liker := range p.Likes {
		if liker == name {
			return true
		}
	}
	return false
}

// CanonicalPostID returns the lowercase form of a post id, used for lookups.
func CanonicalPostID(id string) string {
	return strings.ToLower(id)
}
