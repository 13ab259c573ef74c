package domain

import (
	"time"
)

type User struct {
	ID int `json:"id"`
	Name string `json:"name"`
	Handle string `json:"handle" gorm:"uniqueIndex;notNull"`

	// Password and Remember only ever hold transient values coming in from
	// a request. Only their hashes are stored, and none of the four fields
	// is ever serialized into a response.
	Password string `json:"-" gorm:"-"`
	PasswordHash string `json:"-"`
	Remember string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	CreateUser(user *User) error
	UpdateUser(user *User) error
	ByID(id int) (*User, error)
	ByHandle(handle string) (*User, error)
	ByRemember(token string) (*User, error)
	All() ([]User, error)
	Authenticate(handle, password string) (*User, error)
}
