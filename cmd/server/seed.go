package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dom/kpitter/internal/service"
)

const demoPassword = "12345678"

var demoTexts = []string{
	"Is history repeating itself...?",
	"Damn, it's hard to wrap presents when you're drunk.",
	"Don't Look a Gift Horse In The Mouth",
	"Shot In the Dark",
	"Let Her Rip",
	"He excelled at firing people nicely.",
	"We have a lot of rain in June.",
	"Every manager should be able to recite at least ten nursery rhymes backward.",
	"You Can't Teach an Old Dog New Tricks",
	"Off One's Base",
	"Mountain Out of a Molehill",
	"There's a message for you if you look up.",
	"It must be five o'clock somewhere.",
}

// seedDemoData registers a few demo users and fills their timelines so a
// fresh in-memory instance has something to show.
func seedDemoData(services *service.Services) error {
	ctx := context.Background()

	usernames := make([]string, 0, 3)
	for i := 1; i <= 3; i++ {
		username := fmt.Sprintf("user_%d", i)
		fullName := ""
		if rand.Intn(2) == 0 {
			fullName = fmt.Sprintf("User %d", i)
		}
		if _, err := services.Auth.Register(ctx, service.RegisterInput{
			Username: username,
			Password: demoPassword,
			FullName: fullName,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
		usernames = append(usernames, username)
	}

	type seededPost struct {
		author string
		id     string
	}
	posts := make([]seededPost, 0, len(demoTexts))
	for _, text := range demoTexts {
		author := usernames[rand.Intn(len(usernames))]
		post, err := services.Post.CreatePost(ctx, author, text)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, seededPost{author: author, id: post.ID})
	}

	// Likes are idempotent, so repeats just collapse.
	for i := 0; i < len(posts)*2; i++ {
		post := posts[rand.Intn(len(posts))]
		liker := usernames[rand.Intn(len(usernames))]
		if err := services.Post.LikePost(ctx, post.author, post.id, liker); err != nil {
			return fmt.Errorf("seed like: %w", err)
		}
	}

	return nil
}
