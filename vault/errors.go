package vault

import "errors"

var (
	// ErrEmptyField indicates a blank name or secret after trimming.
	ErrEmptyField = errors.New("name and secret must not be empty")
	// ErrNotFound indicates no entry exists with the given ID.
	ErrNotFound = errors.New("entry not found")
)
