package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidPassword    = errors.New("password must be at least 8 characters")
	ErrNameRequired       = errors.New("fullName cannot be empty")
	ErrEmailRequired      = errors.New("email cannot be empty")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
