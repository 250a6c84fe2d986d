package users

import "errors"

var (
	ErrMissingFields = errors.New("username and password are required")
	ErrInvalidRole   = errors.New("invalid role")
	ErrUserExists    = errors.New("user already exists")
	ErrCannotDelete  = errors.New("user cannot be deleted")

	ErrReservedUsername = errors.New("reserved username requires the admin role")
)
