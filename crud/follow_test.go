package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirper/domain"
	"chirper/errs"
)

func TestFollow(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	bob := createTestUser(t, s, "Bob", "bob")

	err := s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID})
	require.NoError(t, err)

	followees, err := s.Follow.FolloweesOf(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, followees)
}

func TestFollowSelf(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	err := s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: alice.ID})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	followees, err := s.Follow.FolloweesOf(alice.ID)
	require.NoError(t, err)
	assert.NotContains(t, followees, alice.ID)
}

func TestFollowUnknownUser(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")

	err := s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: 999})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	err = s.Follow.Create(&domain.Follow{FollowerID: 999, FollowedID: alice.ID})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

// Following twice must behave exactly like following once.
func TestFollowIdempotent(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	bob := createTestUser(t, s, "Bob", "bob")

	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID}))
	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID}))

	followees, err := s.Follow.FolloweesOf(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, followees)

	var count int64
	require.NoError(t, s.db.Model(&domain.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnfollow(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	bob := createTestUser(t, s, "Bob", "bob")

	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID}))
	require.NoError(t, s.Follow.Delete(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID}))

	followees, err := s.Follow.FolloweesOf(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followees)

	// Unfollowing again is a successful no-op.
	require.NoError(t, s.Follow.Delete(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID}))
}

func TestFolloweesOfNobody(t *testing.T) {
	s := testServices(t)

	alice := createTestUser(t, s, "Alice", "alice")
	followees, err := s.Follow.FolloweesOf(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followees)
}
