package crud

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chirper/auth"
	"chirper/domain"
	"chirper/errs"
)

// UserService manages Users.
// It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	hmac auth.HMAC
	pepper string
	handleRegex *regexp.Regexp
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB, pepper, hmacKey string) *UserService {
	return &UserService{
		userValidator{
			hmac: auth.NewHMAC(hmacKey),
			pepper: pepper,
			handleRegex: regexp.MustCompile(`^[a-zA-Z0-9_]{1,15}$`),
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService
// interface. If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Authenticate checks a handle / password combination against the stored
// credentials and returns the matching user on success.
func (us *UserService) Authenticate(handle, password string) (*domain.User, error) {
	found, err := us.ByHandle(handle)
	if err != nil {
		return nil, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password+us.pepper))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "Incorrect password provided.")
		}
		return nil, err
	}
	return found, nil
}

// CreateUser runs validations needed for creating new User database records.
// It backfills data like the ID, PasswordHash and RememberHash fields.
func (uv *userValidator) CreateUser(user *domain.User) error {
	err := runUserValFns(user,
		uv.nameRequired,
		uv.passwordRequired,
		uv.passwordMinLength,
		uv.passwordBcrypt,
		uv.passwordHashRequired,
		uv.rememberSetIfUnset,
		uv.rememberMinBytes,
		uv.rememberHmac,
		uv.rememberHashRequired,
		uv.handleNormalize,
		uv.handleRequired,
		uv.handleFormat,
		uv.handleIsAvail)
	if err != nil {
		return err
	}
	return uv.userGorm.CreateUser(user)
}

// UpdateUser runs validations needed for updating existing User database
// records. The handle is immutable once set; profile edits may change the
// name, the password (already validated by the caller flow) and the
// remember token.
func (uv *userValidator) UpdateUser(user *domain.User) error {
	err := runUserValFns(user,
		uv.nameRequired,
		uv.passwordMinLength,
		uv.passwordBcrypt,
		uv.passwordHashRequired,
		uv.rememberMinBytes,
		uv.rememberHmac,
		uv.rememberHashRequired,
		uv.handleNormalize,
		uv.handleRequired,
		uv.handleFormat,
		uv.handleUnchanged)
	if err != nil {
		return err
	}
	return uv.userGorm.UpdateUser(user)
}

// ByRemember hashes the incoming session token and looks the user up by
// the hash, which is the only form the token is stored in.
func (uv *userValidator) ByRemember(token string) (*domain.User, error) {
	rememberHash := uv.hmac.Hash(token)
	return uv.userGorm.ByRemember(rememberHash)
}

// runUserValFns runs any number of functions of type userValFn on the passed
// in User object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object
// and returns an error.
type userValFn = func(user *domain.User) error

func (uv *userValidator) nameRequired(user *domain.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return errs.Errorf(errs.EINVALID, "Name must not be empty.")
	}
	return nil
}

func (uv *userValidator) handleNormalize(user *domain.User) error {
	user.Handle = strings.TrimSpace(user.Handle)
	return nil
}

func (uv *userValidator) handleRequired(user *domain.User) error {
	if user.Handle == "" {
		return errs.Errorf(errs.EINVALID, "Handle must not be empty.")
	}
	return nil
}

func (uv *userValidator) handleFormat(user *domain.User) error {
	if !uv.handleRegex.MatchString(user.Handle) {
		return errs.Errorf(errs.EINVALID, "Handle may only contain letters, digits and underscores, max 15 characters.")
	}
	return nil
}

// handleIsAvail makes sure no other user already owns the handle.
func (uv *userValidator) handleIsAvail(user *domain.User) error {
	existing, err := uv.userGorm.ByHandle(user.Handle)
	if errs.ErrorCode(err) == errs.ENOTFOUND {
		return nil // Handle is not taken.
	}
	if err != nil {
		return err
	}
	if user.ID != existing.ID {
		return errs.Errorf(errs.ECONFLICT, "Handle is already taken.")
	}
	return nil
}

// handleUnchanged makes sure an update doesn't try to change the handle.
func (uv *userValidator) handleUnchanged(user *domain.User) error {
	existing, err := uv.userGorm.ByID(user.ID)
	if err != nil {
		return err
	}
	if user.Handle != existing.Handle {
		return errs.Errorf(errs.EINVALID, "Handle cannot be changed.")
	}
	return nil
}

// passwordBcrypt hashes a user's password with the configured pepper and
// bcrypts it, if the Password field is not the empty string.
func (uv *userValidator) passwordBcrypt(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	pwBytes := []byte(user.Password + uv.pepper)
	hashedBytes, err := bcrypt.GenerateFromPassword(pwBytes, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedBytes)
	user.Password = ""
	return nil
}

func (uv *userValidator) passwordHashRequired(user *domain.User) error {
	if user.PasswordHash == "" {
		return errs.Errorf(errs.EINVALID, "Password is required.")
	}
	return nil
}

func (uv *userValidator) passwordMinLength(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	if utf8.RuneCountInString(user.Password) < 8 {
		return errs.Errorf(errs.EINVALID, "Password must be at least 8 characters long.")
	}
	return nil
}

func (uv *userValidator) passwordRequired(user *domain.User) error {
	if user.Password == "" {
		return errs.Errorf(errs.EINVALID, "Password is required.")
	}
	return nil
}

func (uv *userValidator) rememberHashRequired(user *domain.User) error {
	if user.RememberHash == "" {
		return errs.Errorf(errs.EINVALID, "Remember token is required.")
	}
	return nil
}

func (uv *userValidator) rememberHmac(user *domain.User) error {
	if user.Remember == "" {
		return nil
	}
	user.RememberHash = uv.hmac.Hash(user.Remember)
	return nil
}

func (uv *userValidator) rememberMinBytes(user *domain.User) error {
	if user.Remember == "" {
		return nil
	}
	n, err := auth.NBytes(user.Remember)
	if err != nil {
		return errs.Errorf(errs.EINVALID, "Remember token is not valid.")
	}
	if n < auth.RememberTokenBytes {
		return errs.Errorf(errs.EINVALID, "Remember token must be at least 32 bytes.")
	}
	return nil
}

func (uv *userValidator) rememberSetIfUnset(user *domain.User) error {
	if user.Remember != "" {
		return nil
	}
	token, err := auth.MakeRememberToken()
	if err != nil {
		return err
	}
	user.Remember = token
	return nil
}

func (ug *userGorm) CreateUser(user *domain.User) error {
	return ug.db.Create(user).Error
}

func (ug *userGorm) UpdateUser(user *domain.User) error {
	return ug.db.Save(user).Error
}

func (ug *userGorm) ByID(id int) (*domain.User, error) {
	var user domain.User
	err := ug.db.First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

func (ug *userGorm) ByHandle(handle string) (*domain.User, error) {
	var user domain.User
	err := ug.db.First(&user, "handle = ?", handle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

func (ug *userGorm) ByRemember(rememberHash string) (*domain.User, error) {
	var user domain.User
	err := ug.db.First(&user, "remember_hash = ?", rememberHash).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

func (ug *userGorm) All() ([]domain.User, error) {
	var users []domain.User
	err := ug.db.Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
