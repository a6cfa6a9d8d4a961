package custom_errors

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenIssue      = errors.New("failed to issue token")

	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user with this email already exists")
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author not found")

	ErrValidation   = errors.New("validation failed")
	ErrInvalidInput = errors.New("invalid input")

	ErrPasswordHash  = errors.New("failed to hash password")
	ErrDatabaseQuery = errors.New("database query failed")
)
