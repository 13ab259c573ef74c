package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
)

// HashtagService maintains the hashtag index, a secondary table mapping tag
// strings to tweet ids. The index is derived data: the tweets-table stays
// the source of truth and Rebuild recreates the index from it.
// It implements the domain.HashtagService interface.
type HashtagService struct {
	db *gorm.DB
}

// NewHashtagService returns an instance of HashtagService.
func NewHashtagService(db *gorm.DB) *HashtagService {
	return &HashtagService{
		db: db,
	}
}

var _ domain.HashtagService = &HashtagService{}

// WithTx returns a copy of the service bound to the given transaction, so
// index writes can commit or roll back together with other statements.
func (hs *HashtagService) WithTx(tx *gorm.DB) *HashtagService {
	return &HashtagService{
		db: tx,
	}
}

// IndexTweet records the tweet under its tag. An empty tag is a no-op, and
// indexing the same tweet twice leaves a single entry.
func (hs *HashtagService) IndexTweet(tweetId int, tag string) error {
	if tag == "" {
		return nil
	}
	entry := domain.HashtagEntry{
		Tag: tag,
		TweetID: tweetId,
	}
	return hs.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tag"}, {Name: "tweet_id"}},
		DoNothing: true,
	}).Create(&entry).Error
}

// TweetIDsForTag returns the ids of all tweets stored under exactly the
// given tag. Matching is case-sensitive and does not touch a leading '#',
// the tag is compared verbatim to what authors typed.
func (hs *HashtagService) TweetIDsForTag(tag string) ([]int, error) {
	var ids []int
	err := hs.db.Model(&domain.HashtagEntry{}).
		Where("tag = ?", tag).
		Pluck("tweet_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Rebuild drops the index and recreates it from the tweets-table.
func (hs *HashtagService) Rebuild() error {
	return hs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.HashtagEntry{}).Error; err != nil {
			return err
		}
		var tweets []domain.Tweet
		if err := tx.Find(&tweets, "hashtag <> ''").Error; err != nil {
			return err
		}
		for _, tweet := range tweets {
			entry := domain.HashtagEntry{
				Tag: tweet.Hashtag,
				TweetID: tweet.ID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
