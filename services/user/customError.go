package user

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail signals a registration against an existing account.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrUserNotFound signals a lookup for a missing profile.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword signals a failed current-password check on update.
	ErrIncorrectPassword = errors.New("current password is incorrect")
)
