package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("the email address or password is wrong")
	ErrUnauthorized       = errors.New("you need to be logged in to access this resource")
	ErrPasswordTooShort   = errors.New("the password must be at least 8 characters long")
)
