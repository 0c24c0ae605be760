package handlers

import (
	"net/http"

	"github.com/padelhub/padel-web/middleware"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type AuthHandler struct {
	authService services.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.Credentials true "Email and password"
// @Param next query string false "Page to return to after login"
// @Success 200 {object} map[string]interface{} "is_admin and redirect"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Failure 422 {object} map[string]string "Missing fields"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sess, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	h.sessions.Begin(w, sess)

	redirect := "/tournaments"
	if next := r.URL.Query().Get("next"); next != "" && session.LoginURL(next) != session.LoginPath {
		redirect = next
	} else if sess.IsAdmin {
		redirect = "/admin"
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"is_admin": sess.IsAdmin, "redirect": redirect}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.Me
// @Failure 401 {object} map[string]string "Session expired"
// @Security SessionCookie
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		sessionExpiredResponse(w, r, h.sessions)
		return
	}

	me, err := h.authService.Me(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": me, "is_admin": sess.IsAdmin}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Param body body models.ForgotPasswordInput true "Account email"
// @Success 202
// @Failure 422 {object} map[string]string
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input models.ForgotPasswordInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.authService.ForgotPassword(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ResetPassword godoc
// @Summary Set a new password from a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.ResetPasswordInput true "Token and new password"
// @Success 200 {object} services.ResetOutcome
// @Failure 422 {object} map[string]string
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input models.ResetPasswordInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	out, err := h.authService.ResetPassword(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, out, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
