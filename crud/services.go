package crud

import (
	"fmt"

	"gorm.io/gorm"
)

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It's basically just wrapping the constructor
// method of any given crud service. It exists to be able to easily create
// the crud services using functional options in main.go.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The crud services all share the database connection provided by Services.
type Services struct {
	db *gorm.DB
	User *UserService
	Tweet *TweetService
	Follow *FollowService
	Like *LikeService
	Hashtag *HashtagService
	Feed *FeedService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
// It shares the passed in database connection with any crud service it
// creates. The configs run in order, so options for services that depend
// on another one must come after the option for their dependency.
func NewServices(db *gorm.DB, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		db: db,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser(pepper, hmacKey string) ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.db, pepper, hmacKey)
		return nil
	}
}

// WithHashtag wraps the constructor of HashtagService, NewHashtagService.
func WithHashtag() ServicesConfig {
	return func(s *Services) error {
		s.Hashtag = NewHashtagService(s.db)
		return nil
	}
}

// WithTweet wraps the constructor of TweetService, NewTweetService.
// It requires WithHashtag to have run first, since new tweets are indexed
// by hashtag as part of their creation.
func WithTweet() ServicesConfig {
	return func(s *Services) error {
		if s.Hashtag == nil {
			return fmt.Errorf("the tweet service requires the hashtag service")
		}
		s.Tweet = NewTweetService(s.db, s.Hashtag)
		return nil
	}
}

// WithFollow wraps the constructor of FollowService, NewFollowService.
func WithFollow() ServicesConfig {
	return func(s *Services) error {
		s.Follow = NewFollowService(s.db)
		return nil
	}
}

// WithLike wraps the constructor of LikeService, NewLikeService.
func WithLike() ServicesConfig {
	return func(s *Services) error {
		s.Like = NewLikeService(s.db)
		return nil
	}
}

// WithFeed wraps the constructor of FeedService, NewFeedService.
// It requires WithFollow and WithHashtag to have run first.
func WithFeed() ServicesConfig {
	return func(s *Services) error {
		if s.Follow == nil || s.Hashtag == nil {
			return fmt.Errorf("the feed service requires the follow and hashtag services")
		}
		s.Feed = NewFeedService(s.db, s.Follow, s.Hashtag)
		return nil
	}
}
