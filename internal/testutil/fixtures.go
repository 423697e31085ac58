package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/dom/kpitter/internal/service"
	"github.com/stretchr/testify/require"
)

var userCounter int64

// UserBuilder registers users through the real service so fixtures go through
// the same hashing and uniqueness rules as production callers.
type UserBuilder struct {
	username string
	password string
	fullName string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("user_%d", atomic.AddInt64(&userCounter, 1)),
		password: "password123",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithFullName(fullName string) *UserBuilder {
	b.fullName = fullName
	return b
}

// Build registers the user and returns its view along with the raw password.
func (b *UserBuilder) Build(t *testing.T, services *service.Services) (*service.UserView, string) {
	t.Helper()

	view, err := services.Auth.Register(context.Background(), service.RegisterInput{
		Username: b.username,
		Password: b.password,
		FullName: b.fullName,
	})
	require.NoError(t, err)
	return view, b.password
}

// CreatePost publishes a post for an existing user and returns its view.
func CreatePost(t *testing.T, services *service.Services, username, content string) *service.PostView {
	t.Helper()

	view, err := services.Post.CreatePost(context.Background(), username, content)
	require.NoError(t, err)
	return view
}
