package session

import (
	"net/http"
	"strings"
	"time"
)

const (
	TokenCookie = "padel_token"
	AdminCookie = "padel_admin"
)

// Manager stores sessions in browser cookies.
type Manager struct {
	secure bool
	domain string
	now    func() time.Time
}

func NewManager(secure bool, domain string) *Manager {
	return &Manager{secure: secure, domain: domain, now: time.Now}
}

// Begin writes the session cookies.
func (m *Manager) Begin(w http.ResponseWriter, s *Session) {
	admin := "0"
	if s.IsAdmin {
		admin = "1"
	}
	http.SetCookie(w, m.cookie(TokenCookie, s.Token, s.ExpiresAt))
	http.SetCookie(w, m.cookie(AdminCookie, admin, s.ExpiresAt))
}

// End clears the session cookies.
func (m *Manager) End(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, AdminCookie} {
		c := m.cookie(name, "", time.Time{})
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

// FromRequest returns the session carried by the request cookies, falling back
// to an Authorization bearer header. Expired sessions are treated as absent.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	token := ""
	if c, err := r.Cookie(TokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
	}

	isAdmin := false
	if c, err := r.Cookie(AdminCookie); err == nil {
		isAdmin = c.Value == "1"
	}

	s, err := New(token, isAdmin)
	if err != nil || s.Expired(m.now()) {
		return nil, false
	}
	return s, true
}

func (m *Manager) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.domain,
		Expires:  expires,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
