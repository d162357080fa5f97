// Package vault provides CRUD over the ordered collection of stored secrets.
// The whole collection is persisted as one JSON blob under a single store
// key; every mutation rewrites it entirely.
package vault

// Entry is one stored secret.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
}
