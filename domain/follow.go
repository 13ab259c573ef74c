package domain

import "time"

// Follow represents a self-referential many-to-many relationship between two
// users. A Follow is created when one user decides to follow another user.
// The FollowerID is the ID of the user that follows, and the FollowedID is
// the ID of the user that is being followed. The pair carries a composite
// unique index, so the follows-table holds set semantics, not multiset.
type Follow struct {
	ID int `json:"id"`
	FollowerID int `json:"follower_id" gorm:"notNull;uniqueIndex:idx_follower_followed"`
	FollowedID int `json:"followed_id" gorm:"notNull;uniqueIndex:idx_follower_followed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
// Create and Delete are idempotent: creating an edge that already exists and
// deleting an edge that doesn't are both successful no-ops.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	FolloweesOf(userId int) ([]int, error)
}
