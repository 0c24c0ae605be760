package handlers

import (
	"net/http"

	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type PublicHandler struct {
	publicService services.PublicService
	sessions      *session.Manager
}

func NewPublicHandler(publicService services.PublicService, sessions *session.Manager) *PublicHandler {
	return &PublicHandler{publicService: publicService, sessions: sessions}
}

// View godoc
// @Summary Public tournament page
// @Description Read-only view for spectators: standings, fixtures, bracket and matches.
// @Tags public
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.PublicView
// @Failure 404 {object} map[string]string
// @Router /public/tournaments/{tournamentID} [get]
func (h *PublicHandler) View(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, cached, err := h.publicService.View(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}

	headers := http.Header{}
	if cached {
		headers.Set("X-Cache", "HIT")
	} else {
		headers.Set("X-Cache", "MISS")
	}
	if err := writeJSON(w, http.StatusOK, view, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}
