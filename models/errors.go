package models

import "errors"

// Sentinel errors returned by the repositories. Controllers translate
// them into HTTP statuses; anything else is a storage failure.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateUser  = errors.New("username already taken")
	ErrAlreadyFriends = errors.New("already friends with this user")
	ErrSelfFriendship = errors.New("cannot be friends with yourself")
	ErrNotAuthorized  = errors.New("not authorized for this resource")
)
