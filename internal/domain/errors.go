package domain

import "errors"

// User errors
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// Post errors
var (
	ErrAuthorNotFound = errors.New("post author not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidPage    = errors.New("page must be greater than zero")
	ErrInvalidContent = errors.New("post content must be between 1 and 140 characters")
)
