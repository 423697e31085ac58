package domain

import "strings"

// User is a snapshot of a registered account. Repositories hand out copies,
// never live records, so a User is safe to read without holding any lock.
type User struct {
	Username     string
	PasswordHash string
	FullName     string // empty when the user did not provide one
	PostCount    int
}

// CanonicalUsername returns the lowercase form of a username, used as the
// storage and comparison key. Display casing is preserved on the entity.
func CanonicalUsername(username string) string {
	return strings.ToLower(username)
}
