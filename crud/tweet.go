package crud

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// TweetService manages Tweets.
// It implements the domain.TweetService interface.
type TweetService struct {
	tweetValidator
}

// tweetValidator runs validations on incoming Tweet data.
// On success, it passes the data on to tweetGorm.
// Otherwise, it returns the error of the validation that has failed.
type tweetValidator struct {
	tweetGorm
}

// tweetGorm runs CRUD operations on the database using incoming Tweet data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type tweetGorm struct {
	db *gorm.DB
	hashtags *HashtagService
}

// NewTweetService returns an instance of TweetService. New tweets are
// added to the passed in hashtag index as part of their creation.
func NewTweetService(db *gorm.DB, hashtags *HashtagService) *TweetService {
	return &TweetService{
		tweetValidator{
			tweetGorm{
				db: db,
				hashtags: hashtags,
			},
		},
	}
}

// Ensure the TweetService struct properly implements the domain.TweetService
// interface. If it does not, then this expression becomes invalid and won't compile.
var _ domain.TweetService = &TweetService{}

// CreateTweet runs validations needed for creating new Tweet database records.
func (tv *tweetValidator) CreateTweet(tweet *domain.Tweet) error {
	err := runTweetValFns(tweet,
		tv.authorExists,
		tv.bodyMinLength,
		tv.bodyMaxLength)
	if err != nil {
		return err
	}
	return tv.tweetGorm.CreateTweet(tweet)
}

// runTweetValFns runs any number of functions of type tweetValFn on the passed
// in Tweet object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runTweetValFns(tweet *domain.Tweet, fns ...tweetValFn) error {
	for _, fn := range fns {
		if err := fn(tweet); err != nil {
			return err
		}
	}
	return nil
}

// A tweetValFn is any function that takes in a pointer to a domain.Tweet
// object and returns an error.
type tweetValFn = func(tweet *domain.Tweet) error

// authorExists makes sure the tweet's author references an existing user.
func (tv *tweetValidator) authorExists(tweet *domain.Tweet) error {
	err := tv.db.First(&domain.User{}, "id = ?", tweet.UserID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The tweet's author does not exist.")
		}
		return err
	}
	return nil
}

// bodyMinLength makes sure the tweet's body is not empty.
func (tv *tweetValidator) bodyMinLength(tweet *domain.Tweet) error {
	if strings.TrimSpace(tweet.Body) == "" {
		return errs.Errorf(errs.EINVALID, "Tweet body must not be empty.")
	}
	return nil
}

// bodyMaxLength makes sure the tweet's body does not exceed 280 characters.
func (tv *tweetValidator) bodyMaxLength(tweet *domain.Tweet) error {
	if utf8.RuneCountInString(tweet.Body) > 280 {
		return errs.Errorf(errs.EINVALID, "Tweet body max length is 280 characters.")
	}
	return nil
}

// CreateTweet inserts the tweet and adds it to the hashtag index, in one
// transaction, so a tagged tweet is never visible without its index entry.
// Indexing an untagged tweet is a no-op inside the hashtag service.
func (tg *tweetGorm) CreateTweet(tweet *domain.Tweet) error {
	return tg.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tweet).Error; err != nil {
			return err
		}
		return tg.hashtags.WithTx(tx).IndexTweet(tweet.ID, tweet.Hashtag)
	})
}

func (tg *tweetGorm) ByID(id int) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := tg.db.First(&tweet, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The tweet does not exist.")
		}
		return nil, err
	}
	return &tweet, nil
}

// ByUserID returns all tweets of one author, in stored order. Ordering for
// display is the feed service's job.
func (tg *tweetGorm) ByUserID(userId int) ([]domain.Tweet, error) {
	var tweets []domain.Tweet
	err := tg.db.Find(&tweets, "user_id = ?", userId).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

// All returns every tweet, in stored order.
func (tg *tweetGorm) All() ([]domain.Tweet, error) {
	var tweets []domain.Tweet
	err := tg.db.Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}
