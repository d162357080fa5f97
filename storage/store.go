// Package storage provides the key-value storage abstraction all application
// state is persisted through.
package storage

import "errors"

// ErrNotFound is returned when a key is not present in the store.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for persistent string key-value storage.
// All values are strings; structured data is encoded by the owning package
// before it reaches the store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set writes value under key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns every key currently present in the store.
	Keys() ([]string, error)
}
