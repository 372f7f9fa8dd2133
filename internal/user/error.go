package user

import "errors"

var (
	// -- Validation --
	ErrUsernameExists = errors.New("A user with that username already exists.")

	// -- Authentication --
	ErrInvalidCredentials = errors.New("No active account found with the given credentials")

	// -- Resource State --
	ErrUserNotFound = errors.New("user not found")
)
