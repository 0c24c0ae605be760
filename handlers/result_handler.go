package handlers

import (
	"net/http"

	"github.com/padelhub/padel-web/results"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type ResultHandler struct {
	resultService services.ResultService
	sessions      *session.Manager
}

func NewResultHandler(resultService services.ResultService, sessions *session.Manager) *ResultHandler {
	return &ResultHandler{resultService: resultService, sessions: sessions}
}

type resultInput struct {
	Sets []results.SetInput `json:"sets"`
}

// Form godoc
// @Summary Result entry form of a match, prefilled when the match was played
// @Tags results
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param matchID path int true "Match ID"
// @Success 200 {object} services.ResultForm
// @Failure 404 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/matches/{matchID}/result [get]
func (h *ResultHandler) Form(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	form, err := h.resultService.Form(r.Context(), authFrom(r), tournamentID, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, form, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Submit godoc
// @Summary Enter or edit a match result
// @Description Set values are the raw strings typed in the form. Blank rows are dropped; 2 or 3 untied sets are required.
// @Tags results
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param matchID path int true "Match ID"
// @Param body body resultInput true "Sets"
// @Success 200 {object} services.ResultOutcome
// @Failure 409 {object} map[string]string "Tournament finished"
// @Failure 422 {object} map[string]interface{} "First broken rule and set index"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/matches/{matchID}/result [post]
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input resultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	out, err := h.resultService.Submit(r.Context(), authFrom(r), tournamentID, matchID, input.Sets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, out, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
