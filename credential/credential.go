// Package credential manages the single master password gating initial setup
// and the face-template update flow.
//
// The password is stored as plain text: this tool is explicitly not a
// cryptographically secure secret store, and all state is local to one user.
package credential

import (
	"errors"

	"facevault/storage"
)

// MinLength is the minimum accepted master password length.
const MinLength = 6

var (
	// ErrTooShort indicates the chosen password is shorter than MinLength.
	ErrTooShort = errors.New("password too short")
	// ErrMismatch indicates the password and its confirmation differ.
	ErrMismatch = errors.New("passwords do not match")
	// ErrNotSet indicates no master password has been set up yet.
	ErrNotSet = errors.New("no master password set")
	// ErrIncorrectPassword indicates the entered password does not match the
	// stored one.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Credentials provides access to the stored master password.
type Credentials struct {
	store storage.Store
}

// New creates a Credentials handle over the given store.
func New(store storage.Store) *Credentials {
	return &Credentials{store: store}
}

// Set validates and stores the master password, overwriting any previous one.
func (c *Credentials) Set(password, confirm string) error {
	if len(password) < MinLength {
		return ErrTooShort
	}
	if password != confirm {
		return ErrMismatch
	}
	return c.store.Set(storage.KeyMasterCredential, password)
}

// Verify checks the entered password against the stored one.
func (c *Credentials) Verify(password string) error {
	stored, err := c.store.Get(storage.KeyMasterCredential)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotSet
	}
	if err != nil {
		return err
	}
	if password != stored {
		return ErrIncorrectPassword
	}
	return nil
}

// Exists reports whether a master password has been set.
func (c *Credentials) Exists() (bool, error) {
	_, err := c.store.Get(storage.KeyMasterCredential)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
