package service

import (
	"context"

	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/password"
	"github.com/dom/kpitter/internal/repository"
	"github.com/google/uuid"
)

// AuthService handles registration and per-request credential checks. There
// are no sessions or tokens; callers re-verify credentials on every request.
type AuthService struct {
	users repository.UserRepository

	// fallbackHash is verified against when a username is unknown, so that
	// Authenticate takes the same time whether the user exists or not.
	fallbackHash string
}

func NewAuthService(users repository.UserRepository) *AuthService {
	fallback, err := password.Hash(uuid.NewString())
	if err != nil {
		// crypto/rand is assumed to never fail on supported platforms.
		panic(err)
	}
	return &AuthService{
		users:        users,
		fallbackHash: fallback,
	}
}

type RegisterInput struct {
	Username string
	Password string
	FullName string
}

// Register creates a new user with an empty post collection. Returns
// domain.ErrUsernameTaken when the username is already registered under any
// casing.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserView, error) {
	// Hash before touching the repository: argon2 is deliberately slow and
	// must not run under the store lock.
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	view := NewUserView(user)
	return &view, nil
}

// Authenticate reports whether the username/password pair is valid. Unknown
// usernames yield false, not an error, and cost the same verification work as
// known ones.
func (s *AuthService) Authenticate(ctx context.Context, username, pass string) bool {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		password.Verify(pass, s.fallbackHash)
		return false
	}
	return password.Verify(pass, user.PasswordHash)
}

// GetUser returns the view of a user, or domain.ErrUserNotFound.
func (s *AuthService) GetUser(ctx context.Context, username string) (*UserView, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	view := NewUserView(user)
	return &view, nil
}
