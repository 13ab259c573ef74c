package domain

// TweetView is a tweet enriched, at read time, with its author's current
// display name and handle. It is never stored, so a renamed user shows up
// with their new name on all of their old tweets.
type TweetView struct {
	Tweet
	Name string `json:"name"`
	Handle string `json:"handle"`
}

// FeedService composes the tweet store, the follow graph and the hashtag
// index into ordered feeds. All feeds are ordered newest-first, except
// Following which is oldest-first. A selection that matches nothing yields
// an empty slice, not an error.
type FeedService interface {
	Global() ([]TweetView, error)
	ByUserID(userId int) ([]TweetView, error)
	ByHandle(handle string) ([]TweetView, error)
	ByHashtag(tag string) ([]TweetView, error)
	Following(userId int) ([]TweetView, error)
}
