package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
	"chirper/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService
// interface. If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Create runs validations needed for creating new Like database records.
// Liking an already-liked tweet is a successful no-op.
func (lv *likeValidator) Create(like *domain.Like) error {
	err := runLikeValFns(like,
		lv.likingUserExists,
		lv.likedTweetExists)
	if err != nil {
		return err
	}
	return lv.likeGorm.Create(like)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed
// in Like object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

// A likeValFn is any function that takes in a pointer to a domain.Like
// object and returns an error.
type likeValFn = func(like *domain.Like) error

// likingUserExists makes sure the liking user exists.
func (lv *likeValidator) likingUserExists(like *domain.Like) error {
	err := lv.db.First(&domain.User{}, "id = ?", like.UserID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The liking user does not exist.")
		}
		return err
	}
	return nil
}

// likedTweetExists makes sure the tweet to be liked exists.
func (lv *likeValidator) likedTweetExists(like *domain.Like) error {
	err := lv.db.First(&domain.Tweet{}, "id = ?", like.TweetID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The tweet to be liked does not exist.")
		}
		return err
	}
	return nil
}

// Create inserts the like edge. The composite unique index on the
// (user, tweet) pair plus ON CONFLICT DO NOTHING make the insert idempotent
// and race-free: any number of concurrent likes of the same pair end up
// with exactly one row and all of them report success.
func (lg *likeGorm) Create(like *domain.Like) error {
	return lg.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "tweet_id"}},
		DoNothing: true,
	}).Create(like).Error
}

// Delete removes the like edge. Unliking a tweet that wasn't liked is a
// successful no-op.
func (lg *likeGorm) Delete(like *domain.Like) error {
	return lg.db.
		Where("user_id = ? AND tweet_id = ?", like.UserID, like.TweetID).
		Delete(&domain.Like{}).Error
}

// LikersOf returns the ids of all users that liked the given tweet.
func (lg *likeGorm) LikersOf(tweetId int) ([]int, error) {
	var ids []int
	err := lg.db.Model(&domain.Like{}).
		Where("tweet_id = ?", tweetId).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// HasLiked reports whether the user has liked the tweet.
func (lg *likeGorm) HasLiked(userId, tweetId int) (bool, error) {
	var count int64
	err := lg.db.Model(&domain.Like{}).
		Where("user_id = ? AND tweet_id = ?", userId, tweetId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
