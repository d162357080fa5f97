package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"facevault/backup"
	"facevault/gate"
	"facevault/recognize"
	"facevault/vault"
)

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Setup sets the master password. First-time only; an existing credential
// routes the client onward.
func (a *API) Setup(w http.ResponseWriter, r *http.Request) {
	d, err := a.gate.Check(gate.PageSetup)
	if err != nil {
		mapError(w, err)
		return
	}
	if !d.Granted {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:      string(d.Reason),
			RedirectTo: string(d.RedirectTo),
		})
		return
	}

	var req SetupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.creds.Set(req.Password, req.Confirm); err != nil {
		mapError(w, err)
		return
	}
	a.log.Info(r.Context(), "master password set")
	w.WriteHeader(http.StatusCreated)
}

// GateCheck evaluates the entry decision for a page and returns it as data;
// navigation stays with the client.
func (a *API) GateCheck(w http.ResponseWriter, r *http.Request) {
	page := gate.Page(chi.URLParam(r, "page"))
	d, err := a.gate.Check(page)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, GateResponse{
		Granted:     d.Granted,
		Reason:      string(d.Reason),
		RedirectTo:  string(d.RedirectTo),
		RemainingMS: d.Remaining.Milliseconds(),
	})
}

// Enroll stores the submitted embedding as the reference face template.
// Enrollment never opens a session; the client goes on to verify.
func (a *API) Enroll(w http.ResponseWriter, r *http.Request) {
	var req EmbeddingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.enroller.EnrollEmbedding(recognize.Embedding(req.Embedding)); err != nil {
		mapError(w, err)
		return
	}
	a.log.Info(r.Context(), "face template enrolled", "dims", len(req.Embedding))
	w.WriteHeader(http.StatusCreated)
}

// Verify matches the submitted embedding against the enrolled template and
// opens a session on success.
func (a *API) Verify(w http.ResponseWriter, r *http.Request) {
	var req EmbeddingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Embedding) == 0 {
		mapError(w, recognize.ErrNoFaceDetected)
		return
	}
	res, err := a.verifier.Match(recognize.Embedding(req.Embedding))
	if err != nil {
		a.log.Warn(r.Context(), "verification failed", "err", err)
		mapError(w, err)
		return
	}
	a.log.Info(r.Context(), "verification succeeded", "distance", res.Distance)
	writeJSON(w, http.StatusOK, VerifyResponse{
		Distance:    res.Distance,
		ExpiresAt:   res.ExpiresAt,
		RemainingMS: res.ExpiresAt.Sub(a.clock.Now()).Milliseconds(),
	})
}

// UpdateFace overwrites the enrolled template after master-password re-entry.
func (a *API) UpdateFace(w http.ResponseWriter, r *http.Request) {
	var req UpdateFaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.updater.UpdateEmbedding(req.Password, recognize.Embedding(req.Embedding)); err != nil {
		mapError(w, err)
		return
	}
	a.log.Info(r.Context(), "face template updated")
	w.WriteHeader(http.StatusNoContent)
}

// SessionStatus reports the current session decision.
func (a *API) SessionStatus(w http.ResponseWriter, r *http.Request) {
	d, err := a.sessions.Check()
	if err != nil {
		mapError(w, err)
		return
	}
	resp := SessionResponse{Granted: d.Granted}
	if d.Granted {
		resp.RemainingMS = d.Remaining.Milliseconds()
		resp.ExpiresAt = &d.ExpiresAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout unconditionally deletes the session.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Logout(); err != nil {
		mapError(w, err)
		return
	}
	a.log.Info(r.Context(), "logged out")
	w.WriteHeader(http.StatusNoContent)
}

// ListEntries returns all entries, filtered by the q parameter when present.
func (a *API) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := a.vault.Search(r.URL.Query().Get("q"))
	if err != nil {
		mapError(w, err)
		return
	}
	if entries == nil {
		entries = []vault.Entry{}
	}
	writeJSON(w, http.StatusOK, EntriesResponse{Entries: entries})
}

// AddEntry creates a new vault entry.
func (a *API) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := a.vault.Add(req.Name, req.Secret)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateEntry mutates an existing vault entry in place.
func (a *API) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.vault.Update(chi.URLParam(r, "entryID"), req.Name, req.Secret); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveEntry deletes a vault entry. Unknown IDs are a no-op.
func (a *API) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	if err := a.vault.Remove(chi.URLParam(r, "entryID")); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Backup snapshots the whole store and offers it as a downloadable document.
func (a *API) Backup(w http.ResponseWriter, r *http.Request) {
	doc, err := a.backups.Snapshot()
	if err != nil {
		mapError(w, err)
		return
	}
	data, err := backup.Encode(doc)
	if err != nil {
		mapError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.Filename(a.clock.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Restore overwrites application state from an uploaded backup document.
func (a *API) Restore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body")
		return
	}
	n, err := a.backups.Restore(data)
	if err != nil {
		mapError(w, err)
		return
	}
	a.log.Info(r.Context(), "restore complete", "keys", n)
	writeJSON(w, http.StatusOK, RestoreResponse{Restored: n})
}
