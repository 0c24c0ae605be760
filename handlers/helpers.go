package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/middleware"
	"github.com/padelhub/padel-web/results"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
	"github.com/padelhub/padel-web/storage"
)

type jsonResponse map[string]interface{}

const maxBodyBytes = 1_048_576

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, body jsonResponse) {
	if err := writeJSON(w, status, body, nil); err != nil {
		slog.Error("failed to write error response", slog.String("path", r.URL.Path), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	errorResponse(w, r, http.StatusInternalServerError, jsonResponse{"error": "the server encountered a problem and could not process your request"})
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, jsonResponse{"error": err.Error()})
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, jsonResponse{"error": "the requested resource could not be found"})
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, jsonResponse{"error": message})
}

// restrictedResponse is the placeholder shown instead of a page the user may not see.
func restrictedResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusForbidden, jsonResponse{"restricted": true})
}

// sessionExpiredResponse drops the session and sends the browser to the login
// page, remembering where it wanted to go.
func sessionExpiredResponse(w http.ResponseWriter, r *http.Request, sessions *session.Manager) {
	sessions.End(w)
	errorResponse(w, r, http.StatusUnauthorized, jsonResponse{
		"error":    "your session has expired, please sign in again",
		"redirect": session.LoginURL(middleware.ReturnPath(r)),
	})
}

// failedValidationResponse reports the first broken rule. set is the 1-based
// index of the offending set row, when the rule is about one.
func failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	body := jsonResponse{}
	var ve *results.ValidationError
	if errors.As(err, &ve) {
		body["error"] = ve.Err.Error()
		if ve.Set > 0 {
			body["set"] = ve.Set
		}
	} else {
		body["error"] = strings.TrimPrefix(err.Error(), services.ErrValidationFailed.Error()+": ")
	}
	errorResponse(w, r, http.StatusUnprocessableEntity, body)
}

// mapServiceErrorToHTTP turns service errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, sessions *session.Manager, err error) {
	var apiErr *apiclient.Error

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		errorResponse(w, r, http.StatusUnauthorized, jsonResponse{"error": services.ErrInvalidCredentials.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		sessionExpiredResponse(w, r, sessions)
	case errors.Is(err, services.ErrForbidden):
		restrictedResponse(w, r)

	case errors.Is(err, services.ErrValidationFailed):
		failedValidationResponse(w, r, err)
	case errors.Is(err, storage.ErrReceiptType):
		badRequestResponse(w, r, storage.ErrReceiptType)

	case errors.Is(err, services.ErrNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrTournamentInvalidStatusTransition),
		errors.Is(err, services.ErrTournamentFinished),
		errors.Is(err, services.ErrResultEditNotAllowed),
		errors.Is(err, services.ErrScheduleNotConfigured),
		errors.Is(err, services.ErrTicketClosed):
		conflictResponse(w, r, err.Error())
	case errors.Is(err, services.ErrMatchNotPending):
		conflictResponse(w, r, services.ErrMatchNotPending.Error())

	case errors.Is(err, storage.ErrStorageDisabled):
		errorResponse(w, r, http.StatusServiceUnavailable, jsonResponse{"error": storage.ErrStorageDisabled.Error()})

	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		errorResponse(w, r, status, jsonResponse{"error": apiErr.Message})

	default:
		serverErrorResponse(w, r, err)
	}
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", param, raw)
	}
	return id, nil
}

// authFrom returns the request session for backend calls; nil when anonymous.
func authFrom(r *http.Request) apiclient.Auth {
	s, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		return nil
	}
	return s
}
