package domain

import (
	"time"
)

// Like represents a many-to-many relationship between a User and a Tweet.
// A Like is created when a user decides to like a tweet, and destroyed when
// they unlike it. At most one edge exists per (user, tweet) pair, enforced
// by a composite unique index.
type Like struct {
	ID int `json:"id"`
	UserID int `json:"user_id" gorm:"notNull;uniqueIndex:idx_user_tweet"`
	TweetID int `json:"tweet_id" gorm:"notNull;uniqueIndex:idx_user_tweet"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
// Create and Delete are idempotent: liking an already-liked tweet and
// unliking a not-liked tweet are both successful no-ops.
type LikeService interface {
	Create(like *Like) error
	Delete(like *Like) error
	LikersOf(tweetId int) ([]int, error)
	HasLiked(userId, tweetId int) (bool, error)
}
