package api

import (
	"time"

	"facevault/vault"
)

// SetupRequest carries the master password and its confirmation.
type SetupRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// EmbeddingRequest carries a client-extracted face embedding.
type EmbeddingRequest struct {
	Embedding []float64 `json:"embedding"`
}

// UpdateFaceRequest carries the master password re-entry plus the new
// embedding for the update-face flow.
type UpdateFaceRequest struct {
	Password  string    `json:"password"`
	Embedding []float64 `json:"embedding"`
}

// VerifyResponse reports a successful verification and the session it opened.
type VerifyResponse struct {
	Distance    float64   `json:"distance"`
	ExpiresAt   time.Time `json:"expires_at"`
	RemainingMS int64     `json:"remaining_ms"`
}

// SessionResponse reports the current session state.
type SessionResponse struct {
	Granted     bool       `json:"granted"`
	RemainingMS int64      `json:"remaining_ms,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// GateResponse reports a page-entry decision.
type GateResponse struct {
	Granted     bool   `json:"granted"`
	Reason      string `json:"reason,omitempty"`
	RedirectTo  string `json:"redirect_to,omitempty"`
	RemainingMS int64  `json:"remaining_ms,omitempty"`
}

// EntryRequest carries a vault entry's mutable fields.
type EntryRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// EntriesResponse wraps a vault listing.
type EntriesResponse struct {
	Entries []vault.Entry `json:"entries"`
}

// RestoreResponse reports how many keys a restore wrote.
type RestoreResponse struct {
	Restored int `json:"restored"`
}

// ErrorResponse is the JSON body of every error reply. RedirectTo is set
// when the failure is a gate denial and names the page to route to.
type ErrorResponse struct {
	Error      string `json:"error"`
	RedirectTo string `json:"redirect_to,omitempty"`
}
