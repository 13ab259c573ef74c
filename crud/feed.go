package crud

import (
	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// FeedService assembles the five feed variants out of the tweet store, the
// follow graph and the hashtag index. Every feed is a slice of TweetViews,
// tweets enriched with their author's current name and handle, looked up
// fresh on every read so profile edits show up on old tweets immediately.
// It implements the domain.FeedService interface.
type FeedService struct {
	db *gorm.DB
	follows domain.FollowService
	hashtags domain.HashtagService
}

// NewFeedService returns an instance of FeedService.
func NewFeedService(db *gorm.DB, follows domain.FollowService, hashtags domain.HashtagService) *FeedService {
	return &FeedService{
		db: db,
		follows: follows,
		hashtags: hashtags,
	}
}

var _ domain.FeedService = &FeedService{}

// Global returns all tweets, newest first.
func (fs *FeedService) Global() ([]domain.TweetView, error) {
	var tweets []domain.Tweet
	err := fs.db.
		Preload("User").
		Order("created_at desc, id desc").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return enrich(tweets)
}

// ByUserID returns all tweets of one author, newest first.
func (fs *FeedService) ByUserID(userId int) ([]domain.TweetView, error) {
	var tweets []domain.Tweet
	err := fs.db.
		Preload("User").
		Where("user_id = ?", userId).
		Order("created_at desc, id desc").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return enrich(tweets)
}

// ByHandle returns all tweets whose author currently owns the given handle,
// newest first. An unknown handle simply matches nothing.
func (fs *FeedService) ByHandle(handle string) ([]domain.TweetView, error) {
	var user domain.User
	err := fs.db.First(&user, "handle = ?", handle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []domain.TweetView{}, nil
		}
		return nil, err
	}
	return fs.ByUserID(user.ID)
}

// ByHashtag returns all tweets stored under exactly the given tag, newest
// first. The lookup goes through the hashtag index, not a tweet scan.
func (fs *FeedService) ByHashtag(tag string) ([]domain.TweetView, error) {
	ids, err := fs.hashtags.TweetIDsForTag(tag)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.TweetView{}, nil
	}
	var tweets []domain.Tweet
	err = fs.db.
		Preload("User").
		Where("id IN ?", ids).
		Order("created_at desc, id desc").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return enrich(tweets)
}

// Following returns all tweets by users the caller follows. Unlike the
// other feeds this one is ordered oldest first, which is what the product
// shipped with.
func (fs *FeedService) Following(userId int) ([]domain.TweetView, error) {
	followees, err := fs.follows.FolloweesOf(userId)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		return []domain.TweetView{}, nil
	}
	var tweets []domain.Tweet
	err = fs.db.
		Preload("User").
		Where("user_id IN ?", followees).
		Order("created_at asc, id asc").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return enrich(tweets)
}

// enrich turns tweets into TweetViews using the preloaded author records.
// A tweet whose author row is gone violates a store invariant, so that is
// a consistency error, not a not-found.
func enrich(tweets []domain.Tweet) ([]domain.TweetView, error) {
	views := make([]domain.TweetView, 0, len(tweets))
	for _, tweet := range tweets {
		if tweet.User.ID == 0 {
			return nil, errs.Errorf(errs.ECONSISTENCY, "Tweet %d references a vanished author %d.", tweet.ID, tweet.UserID)
		}
		views = append(views, domain.TweetView{
			Tweet: tweet,
			Name: tweet.User.Name,
			Handle: tweet.User.Handle,
		})
	}
	return views, nil
}
