package services

import "errors"

// Business-rule failures are returned as values so controllers can map them
// onto HTTP statuses. Infrastructure errors (database down, etc.) pass
// through untouched and end up as 500s.
var (
	ErrSelfConnection   = errors.New("cannot connect with yourself")
	ErrAlreadyConnected = errors.New("already connected with this user")
	ErrAlreadyPending   = errors.New("a connection request already exists")
	ErrNotAuthorized    = errors.New("not authorized to perform this action")
	ErrInvalidState     = errors.New("connection request has already been processed")
	ErrNotFound         = errors.New("connection not found")
)
