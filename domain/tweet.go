package domain

import (
	"time"
)

// Tweet is a single message posted by a user. Its Body is immutable once
// created. Hashtag is optional and stored exactly as the author typed it,
// no case folding, no stripping of a leading '#'.
type Tweet struct {
	ID int `json:"id"`
	UserID int `json:"user_id" gorm:"notNull;index"`
	User User `json:"-"`
	Body string `json:"body"`
	Hashtag string `json:"hashtag,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetService is a set of methods to manipulate and work with the Tweet model.
type TweetService interface {
	CreateTweet(tweet *Tweet) error
	ByID(id int) (*Tweet, error)
	ByUserID(userId int) ([]Tweet, error)
	All() ([]Tweet, error)
}
