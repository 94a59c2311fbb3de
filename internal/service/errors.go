package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTodoNotFound         = errors.New("todo not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInternalServer       = errors.New("internal server error")
)
