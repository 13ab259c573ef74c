package crud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chirper/database"
	"chirper/domain"
)

// testServices spins up the full service container on a fresh in-memory
// sqlite database.
func testServices(t *testing.T) *Services {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)

	services, err := NewServices(
		db,
		WithUser("test-pepper", "test-hmac-key"),
		WithHashtag(),
		WithTweet(),
		WithFollow(),
		WithLike(),
		WithFeed(),
	)
	require.NoError(t, err)
	return services
}

func createTestUser(t *testing.T, s *Services, name, handle string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name: name,
		Handle: handle,
		Password: "password123",
	}
	require.NoError(t, s.User.CreateUser(user))
	return user
}

func createTestTweet(t *testing.T, s *Services, userId int, body, hashtag string) *domain.Tweet {
	t.Helper()
	tweet := &domain.Tweet{
		UserID: userId,
		Body: body,
		Hashtag: hashtag,
	}
	require.NoError(t, s.Tweet.CreateTweet(tweet))
	return tweet
}

// createTestTweetAt pins the creation timestamp, for tests that depend on
// tweets being posted at distinct times.
func createTestTweetAt(t *testing.T, s *Services, userId int, body, hashtag string, at time.Time) *domain.Tweet {
	t.Helper()
	tweet := &domain.Tweet{
		UserID: userId,
		Body: body,
		Hashtag: hashtag,
		CreatedAt: at,
	}
	require.NoError(t, s.Tweet.CreateTweet(tweet))
	return tweet
}
