package models

import "errors"

// Sentinel errors shared by the repository and service layers. The API
// layer maps them to HTTP status codes in one place.
var (
	// ErrNotFound is returned when the target entity does not exist or
	// does not belong to the requesting account.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when creating an account with a
	// username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrLastAdmin is returned when deleting or demoting the only
	// remaining admin account.
	ErrLastAdmin = errors.New("at least one admin account must remain")

	// ErrDeleteSelf is returned when an account tries to delete itself.
	ErrDeleteSelf = errors.New("cannot delete the currently logged-in account")

	// ErrCategoryInUse is returned when deleting a category that is
	// still referenced by maintenance records.
	ErrCategoryInUse = errors.New("category is referenced by maintenance records")

	// ErrInvalidCredentials is returned on failed login. It deliberately
	// does not say whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidBackup is returned when an imported backup document
	// fails validation.
	ErrInvalidBackup = errors.New("invalid backup document")
)
