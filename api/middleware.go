package api

import "net/http"

// RequireSession gates vault routes on a valid session. A denied check
// answers 401 with the page the client should route to; it never lets the
// request through with an error attached.
func (a *API) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := a.sessions.Check()
		if err != nil {
			mapError(w, err)
			return
		}
		if !d.Granted {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:      "session expired or not found",
				RedirectTo: "verify",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
