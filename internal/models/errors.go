package models

import (
	"errors"
)

// Session-related errors
var (
	// ErrNotAuthenticated is returned when an operation needs a logged in user
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoToken is returned when no session token is stored
	ErrNoToken = errors.New("no session token stored")
)

// Entity-related errors
var (
	// ErrNotFound is returned when the backend has no such entity
	ErrNotFound = errors.New("not found")

	// ErrInvalidLinkStatus is returned for link statuses other than applied or bookmarked
	ErrInvalidLinkStatus = errors.New("invalid user project status")

	// ErrInvalidProjectID is returned when a project identifier cannot be parsed
	ErrInvalidProjectID = errors.New("invalid project id")
)
