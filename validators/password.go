package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordTooWeak  = errors.New("password must contain upper and lower case letters and a number")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	return nil
}

// StrongPasswordValidator applies the stricter web-form rule on top of
// the base checks: mixed case plus at least one digit
func StrongPasswordValidator(p string) error {
	if err := PasswordValidator(p); err != nil {
		return err
	}

	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !upper || !lower || !digit {
		return ErrPasswordTooWeak
	}

	return nil
}

func ConfirmationValidator(password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}

	return nil
}
