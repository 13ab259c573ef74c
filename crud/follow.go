package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
	"chirper/errs"
)

// FollowService manages Follows, the edges of the social graph.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService
// interface. If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
// Following a user that is already followed is a successful no-op.
func (fv *followValidator) Create(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.followedIsNotFollower,
		fv.followerExists,
		fv.followedExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// runFollowValFns runs any number of functions of type followValFn on the
// passed in Follow object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow
// object and returns an error.
type followValFn = func(follow *domain.Follow) error

// followedIsNotFollower makes sure a user is not following themselves.
func (fv *followValidator) followedIsNotFollower(follow *domain.Follow) error {
	if follow.FollowerID == follow.FollowedID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// followerExists makes sure the following user exists.
func (fv *followValidator) followerExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The following user does not exist.")
		}
		return err
	}
	return nil
}

// followedExists makes sure the user to be followed exists.
func (fv *followValidator) followedExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// Create inserts the follow edge. The composite unique index on the
// (follower, followed) pair plus ON CONFLICT DO NOTHING make the insert
// idempotent and race-free: two concurrent creates of the same edge end
// up with exactly one row and both report success.
func (fg *followGorm) Create(follow *domain.Follow) error {
	return fg.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
		DoNothing: true,
	}).Create(follow).Error
}

// Delete removes the follow edge. Deleting an edge that doesn't exist is a
// successful no-op.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&domain.Follow{}).Error
}

// FolloweesOf returns the ids of all users the given user follows. A user
// that follows nobody gets an empty slice. The self-follow guard in Create
// guarantees the result never contains the user themselves.
func (fg *followGorm) FolloweesOf(userId int) ([]int, error) {
	var ids []int
	err := fg.db.Model(&domain.Follow{}).
		Where("follower_id = ?", userId).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
