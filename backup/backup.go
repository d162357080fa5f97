// Package backup serializes the entire key-value store to a portable
// document and restores it. Backup and restore operate on the raw store and
// deliberately bypass the session gate, matching the tool's data-management
// surface.
package backup

import (
	"encoding/json"
	"errors"
	"time"

	"facevault/storage"
)

// ErrInvalidFormat indicates the restore input is not a JSON object mapping
// keys to string values.
var ErrInvalidFormat = errors.New("invalid backup format")

// Document is a snapshot of the whole key-value store.
type Document map[string]string

// Service performs backup and restore against one store.
type Service struct {
	store storage.Store
}

// NewService creates a backup Service over the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Snapshot reads every key currently in the store into a Document. Pure
// read, no store mutation.
func (s *Service) Snapshot() (Document, error) {
	keys, err := s.store.Keys()
	if err != nil {
		return nil, err
	}
	doc := make(Document, len(keys))
	for _, k := range keys {
		v, err := s.store.Get(k)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		doc[k] = v
	}
	return doc, nil
}

// Encode serializes a document with 2-space indentation so the backup file
// stays human-readable.
func Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses backup file contents into a Document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrInvalidFormat
	}
	return doc, nil
}

// Filename derives the backup file name from the given time.
func Filename(now time.Time) string {
	return "vault_" + now.Format("2006-01-02_150405") + ".json"
}

// Restore replaces the application's state with the document's. The input
// is parsed before anything is touched, so a malformed document leaves the
// store untouched. On success the known application keys are cleared first,
// then every key present in the document is written, including keys outside
// the known set. The clear step is scoped, the write step is not.
//
// Returns the number of keys written.
func (s *Service) Restore(data []byte) (int, error) {
	doc, err := Decode(data)
	if err != nil {
		return 0, err
	}

	for _, k := range storage.KnownKeys() {
		if err := s.store.Delete(k); err != nil {
			return 0, err
		}
	}

	written := 0
	for k, v := range doc {
		if err := s.store.Set(k, v); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
