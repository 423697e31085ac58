package memory_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/repository"
	"github.com/dom/kpitter/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	return memory.NewRepositories()
}

func createUser(t *testing.T, repos *repository.Repositories, username string) {
	t.Helper()
	err := repos.User.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
	})
	require.NoError(t, err)
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	createUser(t, repos, "Alice")

	err := repos.User.Create(ctx, &domain.User{Username: "ALICE"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// Original casing survives the failed insert.
	user, err := repos.User.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Username)
}

func TestUserRepo_CaseInsensitiveLookup(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	createUser(t, repos, "Alice")

	upper, err := repos.User.GetByUsername(ctx, "ALICE")
	require.NoError(t, err)
	lower, err := repos.User.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, upper.Username, lower.Username)

	_, err = repos.User.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepo_IsAvailable(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	available, err := repos.User.IsAvailable(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, available)

	createUser(t, repos, "Alice")

	available, err = repos.User.IsAvailable(ctx, "aLiCe")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestUserRepo_ConcurrentRegistration(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repos.User.Create(ctx, &domain.User{Username: "alice"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestPostRepo_NewestFirstOrdering(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	first, err := repos.Post.Create(ctx, "alice", "first", base.Add(1*time.Minute))
	require.NoError(t, err)
	second, err := repos.Post.Create(ctx, "alice", "second", base.Add(2*time.Minute))
	require.NoError(t, err)
	third, err := repos.Post.Create(ctx, "alice", "third", base.Add(3*time.Minute))
	require.NoError(t, err)

	posts, err := repos.Post.ListByAuthor(ctx, "alice", 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, first.ID, posts[2].ID)
}

func TestPostRepo_OrderingWithBackdatedInsert(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := repos.Post.Create(ctx, "alice", "newer", base.Add(time.Hour))
	require.NoError(t, err)
	older, err := repos.Post.Create(ctx, "alice", "older", base)
	require.NoError(t, err)

	posts, err := repos.Post.ListByAuthor(ctx, "alice", 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Content)
	assert.Equal(t, older.ID, posts[1].ID)
}

func TestPostRepo_UniqueCanonicalIDs(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		post, err := repos.Post.Create(ctx, "alice", fmt.Sprintf("post %d", i), time.Now())
		require.NoError(t, err)
		assert.Equal(t, domain.CanonicalPostID(post.ID), post.ID)
		assert.False(t, seen[post.ID])
		seen[post.ID] = true
	}
}

func TestPostRepo_CrossAuthorLookupFails(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")
	createUser(t, repos, "bob")

	post, err := repos.Post.Create(ctx, "bob", "bob's post", time.Now())
	require.NoError(t, err)

	_, err = repos.Post.GetByID(ctx, "alice", post.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	err = repos.Post.AddLike(ctx, "alice", post.ID, "alice")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostRepo_GetByIDCaseInsensitive(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "Alice")

	post, err := repos.Post.Create(ctx, "alice", "hello", time.Now())
	require.NoError(t, err)

	found, err := repos.Post.GetByID(ctx, "ALICE", strings.ToUpper(post.ID))
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
	assert.Equal(t, "Alice", found.Author.Username)
}

func TestPostRepo_LikeIdempotence(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")
	createUser(t, repos, "bob")

	post, err := repos.Post.Create(ctx, "alice", "hello", time.Now())
	require.NoError(t, err)

	require.NoError(t, repos.Post.AddLike(ctx, "alice", post.ID, "Bob"))
	require.NoError(t, repos.Post.AddLike(ctx, "alice", post.ID, "bob"))

	got, err := repos.Post.GetByID(ctx, "alice", post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 1)
	assert.True(t, got.LikedBy("BOB"))

	// Unliking twice, and unliking a user who never liked, are no-ops.
	require.NoError(t, repos.Post.RemoveLike(ctx, "alice", post.ID, "bob"))
	require.NoError(t, repos.Post.RemoveLike(ctx, "alice", post.ID, "bob"))
	require.NoError(t, repos.Post.RemoveLike(ctx, "alice", post.ID, "carol"))

	got, err = repos.Post.GetByID(ctx, "alice", post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)
}

func TestPostRepo_ConcurrentLikes(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")

	post, err := repos.Post.Create(ctx, "alice", "popular", time.Now())
	require.NoError(t, err)

	const likers = 64
	var wg sync.WaitGroup
	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repos.Post.AddLike(ctx, "alice", post.ID, fmt.Sprintf("liker_%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repos.Post.GetByID(ctx, "alice", post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, likers)
}

func TestPostRepo_ListWindows(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		_, err := repos.Post.Create(ctx, "alice", fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	count, err := repos.Post.CountByAuthor(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	window, err := repos.Post.ListByAuthor(ctx, "alice", 20, 10)
	require.NoError(t, err)
	assert.Len(t, window, 5)
	assert.Equal(t, "post 4", window[0].Content)

	empty, err := repos.Post.ListByAuthor(ctx, "alice", 30, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repos.Post.ListByAuthor(ctx, "nobody", 0, 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPostRepo_SnapshotsAreDetached(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	createUser(t, repos, "alice")

	post, err := repos.Post.Create(ctx, "alice", "hello", time.Now())
	require.NoError(t, err)

	// Mutating a snapshot must not leak into the store.
	post.Likes = append(post.Likes, "mallory")
	post.Content = "tampered"

	got, err := repos.Post.GetByID(ctx, "alice", post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)
	assert.Equal(t, "hello", got.Content)
}
