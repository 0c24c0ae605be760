package middleware

import (
	"net/http"

	"github.com/padelhub/padel-web/session"
)

// Authenticate attaches the request session, if any, to the context.
func Authenticate(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := manager.FromRequest(r); ok {
				r = r.WithContext(WithSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession answers 401 with a login redirect when no session is present.
// The redirect keeps the page the browser came from so it can return there.
func RequireSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := GetSessionFromContext(r.Context()); err != nil {
				manager.End(w)
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"error":    "authentication required",
					"redirect": session.LoginURL(ReturnPath(r)),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin answers the restricted placeholder for non-admin sessions.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := GetSessionFromContext(r.Context())
		if err != nil || !s.IsAdmin {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{"restricted": true})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ReturnPath prefers the page named by the X-Return-To header sent by the
// browser bundle over the API path itself.
func ReturnPath(r *http.Request) string {
	if p := r.Header.Get("X-Return-To"); p != "" {
		return p
	}
	return requestPath(r)
}
