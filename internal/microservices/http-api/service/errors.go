package service

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateItem       = errors.New("item already exists")
	ErrAlreadyFollowing    = errors.New("already following this user")
	ErrNotFoundOrForbidden = errors.New("record not found or access denied")
	ErrSelfFollow          = errors.New("cannot follow yourself")
	ErrUpstreamUnavailable = errors.New("content provider unavailable")
)
