package memory

import (
	"context"

	"github.com/dom/kpitter/internal/domain"
)

type UserRepo struct {
	store *Store
}

// Create inserts a new user. The existence check and the insert happen under
// one lock acquisition, so two concurrent registrations for the same canonical
// username cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	key := domain.CanonicalUsername(user.Username)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[key]; exists {
		return domain.ErrUsernameTaken
	}
	r.store.users[key] = &userRecord{
		username:     user.Username,
		passwordHash: user.PasswordHash,
		fullName:     user.FullName,
	}
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.users[domain.CanonicalUsername(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := rec.snapshot()
	return &user, nil
}

func (r *UserRepo) IsAvailable(ctx context.Context, username string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, exists := r.store.users[domain.CanonicalUsername(username)]
	return !exists, nil
}
