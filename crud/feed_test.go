package crud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirper/domain"
	"chirper/errs"
)

func TestGlobalFeedNewestFirst(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := createTestTweetAt(t, s, alice.ID, "first", "", base)
	t2 := createTestTweetAt(t, s, alice.ID, "second", "", base.Add(time.Minute))
	t3 := createTestTweetAt(t, s, alice.ID, "third", "", base.Add(2*time.Minute))

	feed, err := s.Feed.Global()
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, t3.ID, feed[0].ID)
	assert.Equal(t, t2.ID, feed[1].ID)
	assert.Equal(t, t1.ID, feed[2].ID)
}

func TestFeedByUserID(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	bob := createTestUser(t, s, "Bob", "bob")
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	old := createTestTweetAt(t, s, alice.ID, "old", "", base)
	recent := createTestTweetAt(t, s, alice.ID, "recent", "", base.Add(time.Hour))
	createTestTweetAt(t, s, bob.ID, "not alice's", "", base.Add(time.Minute))

	feed, err := s.Feed.ByUserID(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, recent.ID, feed[0].ID)
	assert.Equal(t, old.ID, feed[1].ID)

	// An author with no tweets is an empty feed, not an error.
	carol := createTestUser(t, s, "Carol", "carol")
	feed, err = s.Feed.ByUserID(carol.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestFeedByHandle(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	createTestTweet(t, s, alice.ID, "hello", "")

	feed, err := s.Feed.ByHandle("alice")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Alice", feed[0].Name)
	assert.Equal(t, "alice", feed[0].Handle)

	// An unknown handle matches nothing.
	feed, err = s.Feed.ByHandle("nobody")
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestFeedByHashtag(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := createTestTweetAt(t, s, alice.ID, "gophers unite", "go", base)
	t2 := createTestTweetAt(t, s, alice.ID, "more gophers", "go", base.Add(time.Minute))
	createTestTweetAt(t, s, alice.ID, "off topic", "rust", base.Add(2*time.Minute))

	feed, err := s.Feed.ByHashtag("go")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, t2.ID, feed[0].ID)
	assert.Equal(t, t1.ID, feed[1].ID)

	feed, err = s.Feed.ByHashtag("none")
	require.NoError(t, err)
	assert.Empty(t, feed)
}

// Tags match exactly as stored: "Go" is a different tag than "go".
func TestFeedByHashtagCaseSensitive(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	lower := createTestTweet(t, s, alice.ID, "lowercase tag", "go")
	createTestTweet(t, s, alice.ID, "uppercase tag", "Go")

	feed, err := s.Feed.ByHashtag("go")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, lower.ID, feed[0].ID)
}

// The following feed is ordered oldest first, merges all followed authors,
// and contains nothing from authors the caller doesn't follow.
func TestFollowingFeed(t *testing.T) {
	s := testServices(t)

	reader := createTestUser(t, s, "Reader", "reader")
	a := createTestUser(t, s, "Author A", "author_a")
	b := createTestUser(t, s, "Author B", "author_b")
	c := createTestUser(t, s, "Author C", "author_c")

	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: reader.ID, FollowedID: a.ID}))
	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: reader.ID, FollowedID: b.ID}))

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := createTestTweetAt(t, s, a.ID, "a first", "", base)
	t2 := createTestTweetAt(t, s, b.ID, "b second", "", base.Add(time.Minute))
	t3 := createTestTweetAt(t, s, a.ID, "a third", "", base.Add(2*time.Minute))
	createTestTweetAt(t, s, c.ID, "c never shows", "", base.Add(30*time.Second))

	feed, err := s.Feed.Following(reader.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, t1.ID, feed[0].ID)
	assert.Equal(t, t2.ID, feed[1].ID)
	assert.Equal(t, t3.ID, feed[2].ID)
}

func TestFollowingFeedNoFollowees(t *testing.T) {
	s := testServices(t)

	reader := createTestUser(t, s, "Reader", "reader")
	other := createTestUser(t, s, "Other", "other")
	createTestTweet(t, s, other.ID, "unseen", "")

	feed, err := s.Feed.Following(reader.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

// Author name and handle are resolved per read, so a rename shows up on
// tweets posted before it.
func TestFeedEnrichmentReflectsRename(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	createTestTweet(t, s, alice.ID, "posted before rename", "")

	feed, err := s.Feed.Global()
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Alice", feed[0].Name)

	alice.Name = "Alice Renamed"
	require.NoError(t, s.User.UpdateUser(alice))

	feed, err = s.Feed.Global()
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Alice Renamed", feed[0].Name)
}

// A tweet whose author row vanished is corruption and surfaces as a
// consistency error, not as not-found or an empty feed.
func TestFeedVanishedAuthor(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	createTestTweet(t, s, alice.ID, "orphan to be", "")

	// Rip the author out from under the tweet, bypassing the services.
	require.NoError(t, s.db.Delete(&domain.User{}, "id = ?", alice.ID).Error)

	_, err := s.Feed.Global()
	assert.Equal(t, errs.ECONSISTENCY, errs.ErrorCode(err))
}

func TestGlobalFeedEmpty(t *testing.T) {
	s := testServices(t)

	feed, err := s.Feed.Global()
	require.NoError(t, err)
	assert.Empty(t, feed)
}
