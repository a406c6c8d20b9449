package user

import (
	"github.com/go-playground/validator/v10"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User is an account holder. Role is free text; only RoleStudent and RoleTeacher unlock endpoints.
//
// Password is kept verbatim: logins compare plaintext.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
	Role     string `json:"role" db:"role"`
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// HasRole reports whether the user holds exactly the given role.
func (u User) HasRole(role string) bool {
	return u.Role == role
}

// NewUser contains information needed to create a new User.
// Password and Role are taken as sent, empty strings included.
type NewUser struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	return validate.Struct(nu)
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	return validate.Struct(c)
}
