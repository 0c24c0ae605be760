package handlers

import (
	"io"
	"net/http"

	"github.com/padelhub/padel-web/services"
	"github.com/padelhub/padel-web/session"
)

type BoardHandler struct {
	boardService services.BoardService
	sessions     *session.Manager
}

func NewBoardHandler(boardService services.BoardService, sessions *session.Manager) *BoardHandler {
	return &BoardHandler{boardService: boardService, sessions: sessions}
}

// Board godoc
// @Summary Schedule board: time slots by courts
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.Board
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/board [get]
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.boardService.Board(r.Context(), authFrom(r), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, board, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Drop godoc
// @Summary Move a pending match to another cell
// @Description A malformed payload or a match that is not pending is ignored and answers applied=false.
// @Tags schedule
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body schedule.Drop true "Drop payload"
// @Success 200 {object} services.DropOutcome
// @Security SessionCookie
// @Router /tournaments/{tournamentID}/board/drop [post]
func (h *BoardHandler) Drop(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		raw = nil
	}
	out, err := h.boardService.Drop(r.Context(), authFrom(r), tournamentID, raw)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, out, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartMatch godoc
// @Summary Mark a match as being played
// @Tags schedule
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{} "match"
// @Security SessionCookie
// @Router /matches/{matchID}/start [post]
func (h *BoardHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	m, err := h.boardService.StartMatch(r.Context(), authFrom(r), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.sessions, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": m}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
