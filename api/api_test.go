package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facevault/internal/logging"
	"facevault/storage/memory"
	"facevault/vault"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	opts = append([]Option{WithClock(clock), WithLogger(logging.Nop())}, opts...)
	a := New(memory.NewStore(), opts...)
	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return srv, clock
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// setupAndVerify walks a fresh server through setup, enrollment and
// verification so vault routes become reachable.
func setupAndVerify(t *testing.T, srv *httptest.Server) {
	t.Helper()
	emb := []float64{0.1, 0.2, 0.3}

	resp := doJSON(t, http.MethodPost, srv.URL+"/setup", SetupRequest{Password: "abc123", Confirm: "abc123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/enroll", EmbeddingRequest{Embedding: emb})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{Embedding: emb})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSetup(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/setup", SetupRequest{Password: "abc123", Confirm: "abc123"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Second setup is refused and routed to enrollment.
	resp = doJSON(t, http.MethodPost, srv.URL+"/setup", SetupRequest{Password: "other1", Confirm: "other1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errResp ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "enroll", errResp.RedirectTo)
}

func TestSetup_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		req  SetupRequest
	}{
		{"too short", SetupRequest{Password: "abc", Confirm: "abc"}},
		{"mismatch", SetupRequest{Password: "abc123", Confirm: "abc124"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/setup", tt.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestVerify(t *testing.T) {
	srv, _ := newTestServer(t)
	emb := []float64{0.1, 0.2, 0.3}

	// Verifying before enrollment reports the conflict.
	resp := doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{Embedding: emb})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/setup", SetupRequest{Password: "abc123", Confirm: "abc123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, srv.URL+"/enroll", EmbeddingRequest{Embedding: emb})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Wrong face.
	resp = doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{Embedding: []float64{5, 5, 5}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Empty embedding means no face was found client-side.
	resp = doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Matching face opens a session.
	resp = doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{Embedding: emb})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var vr VerifyResponse
	decodeBody(t, resp, &vr)
	assert.InDelta(t, 0, vr.Distance, 1e-9)
	assert.Equal(t, (5 * time.Minute).Milliseconds(), vr.RemainingMS)
}

func TestVaultRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/vault/entries", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errResp ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "verify", errResp.RedirectTo)
}

func TestVaultCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	setupAndVerify(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/vault/entries", EntryRequest{Name: "  email  ", Secret: "hunter2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created vault.Entry
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "email", created.Name, "fields are trimmed before storage")

	resp = doJSON(t, http.MethodPost, srv.URL+"/vault/entries", EntryRequest{Name: "bank", Secret: "pin"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/vault/entries", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing EntriesResponse
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Entries, 2)
	assert.Equal(t, "email", listing.Entries[0].Name)

	// Search matches name or secret, case-insensitively.
	resp = doJSON(t, http.MethodGet, srv.URL+"/vault/entries?q=HUNTER", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "email", listing.Entries[0].Name)

	resp = doJSON(t, http.MethodPut, srv.URL+"/vault/entries/"+created.ID, EntryRequest{Name: "work email", Secret: "hunter3"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/vault/entries/missing", EntryRequest{Name: "x", Secret: "y"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/vault/entries/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/vault/entries", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "bank", listing.Entries[0].Name)

	resp = doJSON(t, http.MethodPost, srv.URL+"/vault/entries", EntryRequest{Name: "", Secret: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVaultDeniedAfterExpiry(t *testing.T) {
	srv, clock := newTestServer(t)
	setupAndVerify(t, srv)

	resp := doJSON(t, http.MethodGet, srv.URL+"/vault/entries", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	clock.Advance(5 * time.Minute)

	resp = doJSON(t, http.MethodGet, srv.URL+"/vault/entries", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionStatusAndLogout(t *testing.T) {
	srv, clock := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status SessionResponse
	decodeBody(t, resp, &status)
	assert.False(t, status.Granted)

	setupAndVerify(t, srv)
	clock.Advance(time.Minute)

	resp = doJSON(t, http.MethodGet, srv.URL+"/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.True(t, status.Granted)
	assert.Equal(t, (4 * time.Minute).Milliseconds(), status.RemainingMS)

	resp = doJSON(t, http.MethodPost, srv.URL+"/logout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.False(t, status.Granted)
}

func TestGateCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/gate/setup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d GateResponse
	decodeBody(t, resp, &d)
	assert.True(t, d.Granted)

	resp = doJSON(t, http.MethodGet, srv.URL+"/gate/vault", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &d)
	assert.False(t, d.Granted)
	assert.Equal(t, "verify", d.RedirectTo)

	resp = doJSON(t, http.MethodGet, srv.URL+"/gate/nonsense", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateFace(t *testing.T) {
	srv, _ := newTestServer(t)
	setupAndVerify(t, srv)

	newEmb := []float64{0.9, 0.8, 0.7}

	resp := doJSON(t, http.MethodPost, srv.URL+"/face", UpdateFaceRequest{Password: "wrong1", Embedding: newEmb})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/face", UpdateFaceRequest{Password: "abc123", Embedding: newEmb})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Only the new template verifies now.
	resp = doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{Embedding: []float64{0.1, 0.2, 0.3}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, srv.URL+"/verify", EmbeddingRequest{Embedding: newEmb})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBackupRestore(t *testing.T) {
	srv, _ := newTestServer(t)
	setupAndVerify(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/vault/entries", EntryRequest{Name: "email", Secret: "hunter2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/backup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "vault_")
	var doc map[string]string
	decodeBody(t, resp, &doc)
	assert.Contains(t, doc, "master-credential")
	assert.Contains(t, doc, "vault-collection")

	// Restore onto a fresh server reproduces the state, session included.
	srv2, _ := newTestServer(t)
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, srv2.URL+"/restore", bytes.NewReader(data))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rr RestoreResponse
	decodeBody(t, resp, &rr)
	assert.Equal(t, len(doc), rr.Restored)

	resp = doJSON(t, http.MethodGet, srv2.URL+"/vault/entries", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing EntriesResponse
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "email", listing.Entries[0].Name)
}

func TestRestore_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/restore", bytes.NewBufferString("not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvalidJSONBodies(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, route := range []string{"/setup", "/enroll", "/verify", "/face"} {
		resp := doJSON(t, http.MethodPost, srv.URL+route, "not an object")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, fmt.Sprintf("route %s", route))
	}
}
