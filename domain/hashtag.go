package domain

// HashtagEntry is one row of the hashtag index: it maps a tag string to a
// tweet carrying that tag. The index is derived data, written when a tweet
// is created, and can always be rebuilt from the tweets-table alone.
type HashtagEntry struct {
	ID int `json:"id"`
	Tag string `json:"tag" gorm:"notNull;uniqueIndex:idx_tag_tweet"`
	TweetID int `json:"tweet_id" gorm:"notNull;uniqueIndex:idx_tag_tweet"`
}

// HashtagService maintains and queries the hashtag index. Lookups match the
// stored tag exactly and case-sensitively.
type HashtagService interface {
	IndexTweet(tweetId int, tag string) error
	TweetIDsForTag(tag string) ([]int, error)
	Rebuild() error
}
