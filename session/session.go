package session

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const LoginPath = "/login"

var ErrEmptyToken = errors.New("session token is empty")

// Session is the authenticated state of one browser. A nil *Session means
// anonymous.
type Session struct {
	Token     string
	IsAdmin   bool
	Email     string
	ExpiresAt time.Time
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// New builds a session around a backend access token. The token signature is
// checked by the backend on every call; only the expiry and email claims are
// read here. Opaque tokens are accepted and never expire locally.
func New(token string, isAdmin bool) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	s := &Session{Token: token, IsAdmin: isAdmin}

	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err == nil {
		s.Email = c.Email
		if s.Email == "" {
			s.Email = c.Subject
		}
		if c.ExpiresAt != nil {
			s.ExpiresAt = c.ExpiresAt.Time
		}
	}
	return s, nil
}

// BearerToken implements apiclient.Auth.
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}

func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// LoginURL is the login page address that brings the user back to next after
// signing in. Only same-site paths are kept.
func LoginURL(next string) string {
	if !sameSitePath(next) || strings.HasPrefix(next, LoginPath) {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// sameSitePath rejects anything a browser could resolve to another host:
// "//host", "/\host", and paths hiding those behind control characters or
// backslashes.
func sameSitePath(next string) bool {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return false
	}
	for _, r := range next {
		if r == '\\' || r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
