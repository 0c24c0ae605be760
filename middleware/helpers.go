package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/padelhub/padel-web/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

var ErrNoSession = errors.New("session not found in context")

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// GetSessionFromContext returns the session attached by Authenticate.
func GetSessionFromContext(ctx context.Context) (*session.Session, error) {
	s, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

func requestPath(r *http.Request) string {
	if r.URL.RawQuery != "" {
		return r.URL.Path + "?" + r.URL.RawQuery
	}
	return r.URL.Path
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
