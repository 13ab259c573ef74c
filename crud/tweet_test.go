package crud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirper/domain"
	"chirper/errs"
)

func TestCreateTweet(t *testing.T) {
	s := testServices(t)

	user := createTestUser(t, s, "Alice", "alice")
	tweet := createTestTweet(t, s, user.ID, "hello world", "")
	assert.NotZero(t, tweet.ID)

	found, err := s.Tweet.ByID(tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", found.Body)
	assert.Equal(t, user.ID, found.UserID)
}

func TestCreateTweetUnknownAuthor(t *testing.T) {
	s := testServices(t)

	err := s.Tweet.CreateTweet(&domain.Tweet{UserID: 999, Body: "ghost tweet"})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	// The failed create must not leave a record behind.
	all, err := s.Tweet.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateTweetBodyValidation(t *testing.T) {
	s := testServices(t)

	user := createTestUser(t, s, "Alice", "alice")

	err := s.Tweet.CreateTweet(&domain.Tweet{UserID: user.ID, Body: ""})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.Tweet.CreateTweet(&domain.Tweet{UserID: user.ID, Body: "   "})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.Tweet.CreateTweet(&domain.Tweet{UserID: user.ID, Body: strings.Repeat("x", 281)})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.Tweet.CreateTweet(&domain.Tweet{UserID: user.ID, Body: strings.Repeat("x", 280)})
	assert.NoError(t, err)
}

func TestTweetByIDNotFound(t *testing.T) {
	s := testServices(t)

	_, err := s.Tweet.ByID(999)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestTweetsByUserID(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	bob := createTestUser(t, s, "Bob", "bob")
	createTestTweet(t, s, alice.ID, "one", "")
	createTestTweet(t, s, alice.ID, "two", "")
	createTestTweet(t, s, bob.ID, "three", "")

	tweets, err := s.Tweet.ByUserID(alice.ID)
	require.NoError(t, err)
	assert.Len(t, tweets, 2)

	tweets, err = s.Tweet.ByUserID(bob.ID)
	require.NoError(t, err)
	assert.Len(t, tweets, 1)
}

// Creating a tagged tweet must update the hashtag index synchronously.
func TestCreateTweetIndexesHashtag(t *testing.T) {
	s := testServices(t)

	user := createTestUser(t, s, "Alice", "alice")
	tagged := createTestTweet(t, s, user.ID, "about go", "go")
	createTestTweet(t, s, user.ID, "untagged", "")

	ids, err := s.Hashtag.TweetIDsForTag("go")
	require.NoError(t, err)
	assert.Equal(t, []int{tagged.ID}, ids)
}

// A tweet and its hashtag index entry are written in one transaction: if
// the index write fails, the tweet insert must roll back with it, never
// leaving a tagged tweet the hashtag feed can't see.
func TestCreateTweetIndexingIsAtomic(t *testing.T) {
	s := testServices(t)

	user := createTestUser(t, s, "Alice", "alice")

	// Make the index write fail by dropping its table out from under it.
	require.NoError(t, s.db.Migrator().DropTable(&domain.HashtagEntry{}))

	err := s.Tweet.CreateTweet(&domain.Tweet{UserID: user.ID, Body: "tagged", Hashtag: "go"})
	require.Error(t, err)

	all, err := s.Tweet.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHashtagIndexRebuild(t *testing.T) {
	s := testServices(t)

	user := createTestUser(t, s, "Alice", "alice")
	tagged := createTestTweet(t, s, user.ID, "about go", "go")

	// Wipe the index, then rebuild it from the tweets-table.
	require.NoError(t, s.db.Where("1 = 1").Delete(&domain.HashtagEntry{}).Error)
	ids, err := s.Hashtag.TweetIDsForTag("go")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.Hashtag.Rebuild())
	ids, err = s.Hashtag.TweetIDsForTag("go")
	require.NoError(t, err)
	assert.Equal(t, []int{tagged.ID}, ids)
}
