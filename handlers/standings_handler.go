package handlers

import (
	"net/http"

	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	sessions         *session.Manager
}

func NewStandingsHandler(standingsService services.StandingsService, sessions *session.Manager) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService, sessions: sessions}
}

// Standings godoc
// @Summary Group standings, ranked by points, set difference, game difference
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "groups"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/standings [get]
func (h *StandingsHandler) Standings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tables, err := h.standingsService.Standings(r.Context(), authFrom(r), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Fixtures godoc
// @Summary Group-stage matches per group
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "fixtures"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/fixtures [get]
func (h *StandingsHandler) Fixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fixtures, err := h.standingsService.Fixtures(r.Context(), authFrom(r), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Bracket godoc
// @Summary Playoff bracket
// @Tags playoffs
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "rounds"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/bracket [get]
func (h *StandingsHandler) Bracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rounds, err := h.standingsService.Bracket(r.Context(), authFrom(r), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GeneratePlayoffs godoc
// @Summary Generate the playoff bracket from the group standings
// @Tags playoffs
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body models.GeneratePlayoffsInput true "Teams qualifying per group"
// @Success 201 {object} map[string]interface{} "rounds"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/playoffs/generate [post]
func (h *StandingsHandler) GeneratePlayoffs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.GeneratePlayoffsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rounds, err := h.standingsService.GeneratePlayoffs(r.Context(), authFrom(r), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
