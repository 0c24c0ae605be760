package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/live"
	"github.com/padelhub/padel-web/repositories"
)

// Broadcaster pushes live messages to the spectators of a room.
type Broadcaster interface {
	BroadcastToRoom(room string, msgType string, payload interface{})
}

// handleAPIError maps backend auth failures and repository not-found errors
// onto service errors. The original error stays in the chain.
func handleAPIError(err error) error {
	switch {
	case err == nil:
		return nil
	case apiclient.IsStatus(err, http.StatusUnauthorized):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case apiclient.IsStatus(err, http.StatusForbidden):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case errors.Is(err, repositories.ErrTournamentNotFound),
		errors.Is(err, repositories.ErrTeamNotFound),
		errors.Is(err, repositories.ErrMatchNotFound),
		errors.Is(err, repositories.ErrAccountNotFound),
		errors.Is(err, repositories.ErrTicketNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

func isValidDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// publisher drops the cached public view of a tournament and notifies its
// spectators after a successful mutation. Both collaborators are optional.
type publisher struct {
	hub    Broadcaster
	cache  cache.ViewCache
	logger *slog.Logger
}

func (p publisher) publish(ctx context.Context, tournamentID int, msgType string, payload interface{}) {
	if p.cache != nil {
		if err := p.cache.Invalidate(ctx, tournamentID); err != nil {
			p.logger.Warn("failed to invalidate public view cache", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		}
	}
	if p.hub != nil && msgType != "" {
		p.hub.BroadcastToRoom(live.Room(tournamentID), msgType, payload)
	}
}
