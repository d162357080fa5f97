// Package faceid implements face-template enrollment and verification: the
// biometric half of the vault's authentication gate.
package faceid

import (
	"errors"

	"facevault/recognize"
	"facevault/storage"
)

// Templates persists the single reference face template. At most one
// template exists at a time; saving overwrites wholesale.
type Templates struct {
	store storage.Store
}

// NewTemplates creates a Templates handle over the given store.
func NewTemplates(store storage.Store) *Templates {
	return &Templates{store: store}
}

// Save stores the embedding as the reference template and sets the
// enrollment flag. The flag is redundant with the template's presence and
// kept only for storage-format compatibility.
func (t *Templates) Save(emb recognize.Embedding) error {
	encoded, err := emb.Encode()
	if err != nil {
		return err
	}
	if err := t.store.Set(storage.KeyFaceTemplate, encoded); err != nil {
		return err
	}
	return t.store.Set(storage.KeyEnrollmentFlag, "true")
}

// Load returns the stored reference template. A missing or undecodable
// template reports ErrNotEnrolled.
func (t *Templates) Load() (recognize.Embedding, error) {
	raw, err := t.store.Get(storage.KeyFaceTemplate)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	emb, err := recognize.DecodeEmbedding(raw)
	if err != nil {
		return nil, ErrNotEnrolled
	}
	return emb, nil
}

// Enrolled reports whether a reference template exists.
func (t *Templates) Enrolled() (bool, error) {
	_, err := t.store.Get(storage.KeyFaceTemplate)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
