package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"facevault/storage"
)

// Vault provides CRUD over the stored entry collection. Every mutation is a
// full read-modify-write of the collection; between separate processes the
// last write wins.
type Vault struct {
	store storage.Store
	newID func() string
}

// Option configures a Vault.
type Option func(*Vault)

// WithIDGenerator sets the entry ID generator. Default: uuid.NewString.
func WithIDGenerator(fn func() string) Option {
	return func(v *Vault) { v.newID = fn }
}

// New creates a Vault over the given store.
func New(store storage.Store, opts ...Option) *Vault {
	v := &Vault{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// List returns all entries in insertion order.
func (v *Vault) List() ([]Entry, error) {
	return v.load()
}

// Search returns the entries whose name or secret contains query,
// case-insensitively, in insertion order. An empty query returns everything.
func (v *Vault) Search(query string) ([]Entry, error) {
	entries, err := v.load()
	if err != nil {
		return nil, err
	}
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return entries, nil
	}
	var matched []Entry
	for _, e := range entries {
		if strings.Contains(fold(e.Name), q) || strings.Contains(fold(e.Secret), q) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Add creates a new entry with a fresh unique ID and appends it.
func (v *Vault) Add(name, secret string) (Entry, error) {
	name = strings.TrimSpace(name)
	secret = strings.TrimSpace(secret)
	if name == "" || secret == "" {
		return Entry{}, ErrEmptyField
	}

	entries, err := v.load()
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{ID: v.newID(), Name: name, Secret: secret}
	entries = append(entries, entry)
	if err := v.save(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Update mutates the entry with the given ID in place.
func (v *Vault) Update(id, name, secret string) error {
	name = strings.TrimSpace(name)
	secret = strings.TrimSpace(secret)
	if name == "" || secret == "" {
		return ErrEmptyField
	}

	entries, err := v.load()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Name = name
			entries[i].Secret = secret
			return v.save(entries)
		}
	}
	return fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Remove deletes the entry with the given ID. Removing an unknown ID is a
// no-op, not an error.
func (v *Vault) Remove(id string) error {
	entries, err := v.load()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return v.save(entries)
		}
	}
	return nil
}

func (v *Vault) load() ([]Entry, error) {
	raw, err := v.store.Get(storage.KeyVaultCollection)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decoding vault collection: %w", err)
	}
	return entries, nil
}

func (v *Vault) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return v.store.Set(storage.KeyVaultCollection, string(data))
}

// fold normalizes a string for case-insensitive comparison.
func fold(s string) string {
	return strings.ToLower(norm.NFKD.String(s))
}
