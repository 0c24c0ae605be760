package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/results"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
	"github.com/padelhub/padel-web/storage"
)

type fakeResultService struct {
	out  *services.ResultOutcome
	err  error
	rows []results.SetInput
}

func (f *fakeResultService) Form(context.Context, apiclient.Auth, int, int) (*services.ResultForm, error) {
	return &services.ResultForm{Rows: results.FromScores([]models.SetScore{{A: 6, B: 2}})}, f.err
}

func (f *fakeResultService) Submit(_ context.Context, _ apiclient.Auth, _, _ int, rows []results.SetInput) (*services.ResultOutcome, error) {
	f.rows = rows
	return f.out, f.err
}

type fakeBoardService struct {
	raw []byte
	out *services.DropOutcome
	err error
}

func (f *fakeBoardService) Board(context.Context, apiclient.Auth, int) (*services.Board, error) {
	return &services.Board{}, f.err
}

func (f *fakeBoardService) Drop(_ context.Context, _ apiclient.Auth, _ int, raw []byte) (*services.DropOutcome, error) {
	f.raw = raw
	return f.out, f.err
}

func (f *fakeBoardService) StartMatch(context.Context, apiclient.Auth, int) (*models.Match, error) {
	return nil, f.err
}

type fakeAuthService struct {
	sess *session.Session
	err  error
}

func (f *fakeAuthService) Login(context.Context, models.Credentials) (*session.Session, error) {
	return f.sess, f.err
}

func (f *fakeAuthService) Me(context.Context, apiclient.Auth) (*models.Me, error) {
	return nil, f.err
}

func (f *fakeAuthService) ForgotPassword(context.Context, models.ForgotPasswordInput) error {
	return f.err
}

func (f *fakeAuthService) ResetPassword(context.Context, models.ResetPasswordInput) (*services.ResetOutcome, error) {
	return nil, f.err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: %w", services.ErrForbidden, &apiclient.Error{Status: 403}), http.StatusForbidden},
		{"validation", fmt.Errorf("%w: %w", services.ErrValidationFailed, services.ErrTournamentNameRequired), http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("%w: tournament 4", services.ErrNotFound), http.StatusNotFound},
		{"finished", services.ErrTournamentFinished, http.StatusConflict},
		{"schedule not configured", services.ErrScheduleNotConfigured, http.StatusConflict},
		{"receipt type", storage.ErrReceiptType, http.StatusBadRequest},
		{"storage disabled", storage.ErrStorageDisabled, http.StatusServiceUnavailable},
		{"api passthrough", &apiclient.Error{Status: 409, Message: "groups already generated"}, http.StatusConflict},
		{"api odd status", &apiclient.Error{Status: 302, Message: "moved"}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	sessions := session.NewManager(false, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/tournaments/4", nil)

			mapServiceErrorToHTTP(rec, req, sessions, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestValidationMessageDropsPrefix(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tournaments", nil)

	mapServiceErrorToHTTP(rec, req, session.NewManager(false, ""),
		fmt.Errorf("%w: %w", services.ErrValidationFailed, services.ErrTournamentNameRequired))

	if got := decodeBody(t, rec)["error"]; got != services.ErrTournamentNameRequired.Error() {
		t.Errorf("error = %v", got)
	}
}

func TestSessionExpiredClearsCookiesAndRedirects(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/3/board", nil)
	req.Header.Set("X-Return-To", "/tournaments/3/schedule")

	mapServiceErrorToHTTP(rec, req, session.NewManager(false, ""),
		fmt.Errorf("%w: %w", services.ErrUnauthorized, &apiclient.Error{Status: 401}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	for _, name := range []string{session.TokenCookie, session.AdminCookie} {
		c := cookieByName(rec, name)
		if c == nil || c.MaxAge >= 0 {
			t.Errorf("cookie %s not cleared: %+v", name, c)
		}
	}
	if got := decodeBody(t, rec)["redirect"]; got != "/login?next=%2Ftournaments%2F3%2Fschedule" {
		t.Errorf("redirect = %v", got)
	}
}

func TestResultSubmitReportsOffendingSet(t *testing.T) {
	svc := &fakeResultService{err: fmt.Errorf("%w: %w", services.ErrValidationFailed, &results.ValidationError{Err: results.ErrTiedSet, Set: 3})}
	h := NewResultHandler(svc, session.NewManager(false, ""))
	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/matches/{matchID}/result", h.Submit)

	body := `{"sets":[{"a":"6","b":"4"},{"a":"4","b":"6"},{"a":"6","b":"6"}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tournaments/1/matches/8/result", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != results.ErrTiedSet.Error() || got["set"] != float64(3) {
		t.Errorf("body = %v", got)
	}
	if len(svc.rows) != 3 || svc.rows[2].B != "6" {
		t.Errorf("rows = %v", svc.rows)
	}
}

func TestResultFormRoute(t *testing.T) {
	h := NewResultHandler(&fakeResultService{}, session.NewManager(false, ""))
	router := chi.NewRouter()
	router.Get("/tournaments/{tournamentID}/matches/{matchID}/result", h.Form)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments/1/matches/8/result", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var form services.ResultForm
	if err := json.NewDecoder(rec.Body).Decode(&form); err != nil {
		t.Fatal(err)
	}
	if len(form.Rows) != 1 || form.Rows[0] != (results.SetInput{A: "6", B: "2"}) {
		t.Errorf("rows = %v", form.Rows)
	}
}

func TestResultSubmitRejectsUnknownFields(t *testing.T) {
	svc := &fakeResultService{}
	h := NewResultHandler(svc, session.NewManager(false, ""))
	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/matches/{matchID}/result", h.Submit)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tournaments/1/matches/8/result", strings.NewReader(`{"winner":1}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if svc.rows != nil {
		t.Error("service called for a rejected body")
	}
}

func TestDropPassesRawPayload(t *testing.T) {
	svc := &fakeBoardService{out: &services.DropOutcome{}}
	h := NewBoardHandler(svc, session.NewManager(false, ""))
	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/board/drop", h.Drop)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tournaments/1/board/drop", strings.NewReader("{not json")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(svc.raw) != "{not json" {
		t.Errorf("raw = %q", svc.raw)
	}
	if got := decodeBody(t, rec)["applied"]; got != false {
		t.Errorf("applied = %v", got)
	}
}

func TestBoardRejectsBadTournamentID(t *testing.T) {
	h := NewBoardHandler(&fakeBoardService{}, session.NewManager(false, ""))
	router := chi.NewRouter()
	router.Get("/tournaments/{tournamentID}/board", h.Board)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments/abc/board", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginSetsCookiesAndRedirect(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		isAdmin  bool
		redirect string
	}{
		{"organizer", "", false, "/tournaments"},
		{"admin", "", true, "/admin"},
		{"next honored", "?next=%2Ftournaments%2F5%2Fresults", true, "/tournaments/5/results"},
		{"external next ignored", "?next=https%3A%2F%2Fevil.example", false, "/tournaments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{sess: &session.Session{Token: "tok", IsAdmin: tt.isAdmin}}
			h := NewAuthHandler(svc, session.NewManager(false, ""))

			rec := httptest.NewRecorder()
			body := strings.NewReader(`{"email":"org@example.com","password":"secret123"}`)
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login"+tt.query, body))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if c := cookieByName(rec, session.TokenCookie); c == nil || c.Value != "tok" || !c.HttpOnly {
				t.Errorf("token cookie = %+v", c)
			}
			if got := decodeBody(t, rec)["redirect"]; got != tt.redirect {
				t.Errorf("redirect = %v, want %s", got, tt.redirect)
			}
		})
	}
}

func TestLoginInvalidCredentialsKeepsSession(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{err: services.ErrInvalidCredentials}, session.NewManager(false, ""))

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if c := cookieByName(rec, session.TokenCookie); c != nil {
		t.Errorf("cookie written on failed login: %+v", c)
	}
	if _, ok := decodeBody(t, rec)["redirect"]; ok {
		t.Error("failed login must not redirect")
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, session.NewManager(false, ""))
	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if c := cookieByName(rec, session.TokenCookie); c == nil || c.MaxAge >= 0 {
		t.Errorf("token cookie = %+v", c)
	}
}
