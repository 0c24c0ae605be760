package handlers

import (
	"net/http"

	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	sessions          *session.Manager
}

func NewTournamentHandler(ts services.TournamentService, sessions *session.Manager) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		sessions:          sessions,
	}
}

// List godoc
// @Summary List tournaments of the organizer
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string]interface{} "tournaments"
// @Failure 401 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context(), authFrom(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body models.TournamentInput true "Tournament"
// @Success 201 {object} map[string]interface{} "tournament"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.Create(r.Context(), authFrom(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 404 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.Get(r.Context(), authFrom(r), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Update a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body models.TournamentInput true "Tournament"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID} [patch]
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.Update(r.Context(), authFrom(r), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Delete a tournament
// @Tags tournaments
// @Param tournamentID path int true "Tournament ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.tournamentService.Delete(r.Context(), authFrom(r), id); err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status godoc
// @Summary Tournament status
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} models.TournamentStatusResponse
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/status [get]
func (h *TournamentHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	status, err := h.tournamentService.Status(r.Context(), authFrom(r), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, models.TournamentStatusResponse{Status: status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Transition returns the handler of one status action.
// @Summary Change the tournament status (start, finish-groups, finish)
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 409 {object} map[string]string "Transition not allowed from the current status"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/start [post]
// @Router /tournaments/{tournamentID}/finish-groups [post]
// @Router /tournaments/{tournamentID}/finish [post]
func (h *TournamentHandler) Transition(action services.TransitionAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := getIDFromURL(r, "tournamentID")
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		t, err := h.tournamentService.Transition(r.Context(), authFrom(r), id, action)
		if err != nil {
			mapServiceErrorToHTTP(w, r, h.sessions, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	}
}

// Groups godoc
// @Summary List groups; empty until generated
// @Tags groups
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "groups"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/groups [get]
func (h *TournamentHandler) Groups(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groups, err := h.tournamentService.Groups(r.Context(), authFrom(r), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateGroups godoc
// @Summary Generate groups
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body models.GenerateGroupsInput true "Number of groups"
// @Success 201 {object} map[string]interface{} "groups"
// @Failure 422 {object} map[string]string
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/groups/generate [post]
func (h *TournamentHandler) GenerateGroups(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.GenerateGroupsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groups, err := h.tournamentService.GenerateGroups(r.Context(), authFrom(r), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateGroupMatches godoc
// @Summary Generate the group-stage matches
// @Tags groups
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 201 {object} map[string]interface{} "matches"
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/groups/matches [post]
func (h *TournamentHandler) GenerateGroupMatches(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.tournamentService.GenerateGroupMatches(r.Context(), authFrom(r), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
