package handlers

import (
	"net/http"

	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type TeamHandler struct {
	teamService services.TeamService
	sessions    *session.Manager
}

func NewTeamHandler(teamService services.TeamService, sessions *session.Manager) *TeamHandler {
	return &TeamHandler{teamService: teamService, sessions: sessions}
}

// List godoc
// @Summary List the teams of a tournament, pending placeholders last
// @Tags teams
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "teams"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/teams [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	items, err := h.teamService.List(r.Context(), authFrom(r), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": items}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create godoc
// @Summary Register a player pair
// @Tags teams
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body models.TeamInput true "Players"
// @Success 201 {object} map[string]interface{} "team"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.teamService.Create(r.Context(), authFrom(r), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team, "label": team.Label()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Remove a team
// @Tags teams
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Success 204
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/teams/{teamID} [delete]
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.teamService.Delete(r.Context(), authFrom(r), tournamentID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
