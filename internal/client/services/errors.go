package services

import "errors"

var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	ErrEmptyPatch           = errors.New("nothing to update")
	ErrInvalidLogin         = errors.New("login response carries no user id")
)
