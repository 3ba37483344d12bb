package users

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgFirstName     = "First name must be 2-50 letters only"
	MsgLastName      = "Last name must be 2-50 letters only"
	MsgEmail         = "Invalid email address"
	MsgPassword      = "Password must be at least 8 characters with uppercase, lowercase, and number"
	MsgEmailRequired = "Email is required"
	MsgPassRequired  = "Password is required"
	MsgPasswordLong  = "Password must be at most 72 bytes"

	maxEmailLen = 254
	minPassLen  = 8
	maxPassLen  = 72 // bcrypt input limit
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s\-']{2,50}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type RegisterInput struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate reports every failing field at once.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName,
			validation.Required.Error(MsgFirstName),
			validation.Match(nameRe).Error(MsgFirstName)),
		validation.Field(&in.LastName,
			validation.Required.Error(MsgLastName),
			validation.Match(nameRe).Error(MsgLastName)),
		validation.Field(&in.Email,
			validation.Required.Error(MsgEmail),
			validation.Length(0, maxEmailLen).Error(MsgEmail),
			validation.Match(emailRe).Error(MsgEmail)),
		validation.Field(&in.Password,
			validation.Required.Error(MsgPassword),
			validation.By(strongPassword),
			validation.Length(0, maxPassLen).Error(MsgPasswordLong)),
	)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required.Error(MsgEmailRequired)),
		validation.Field(&in.Password, validation.Required.Error(MsgPassRequired)),
	)
}

func strongPassword(value interface{}) error {
	pw, _ := value.(string)
	if len(pw) < minPassLen {
		return errors.New(MsgPassword)
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New(MsgPassword)
	}
	return nil
}
