package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/live"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/results"
)

// ResultOutcome is the stored match plus the delay before the browser leaves
// the result page.
type ResultOutcome struct {
	Match           *models.Match `json:"match"`
	RedirectAfterMS int64         `json:"redirect_after_ms"`
}

// ResultForm is the result entry form of one match, prefilled with its stored
// sets and padded with blank rows up to the maximum set count.
type ResultForm struct {
	Match    models.Match       `json:"match"`
	Rows     []results.SetInput `json:"rows"`
	Editable bool               `json:"editable"`
	Reason   string             `json:"reason,omitempty"`
}

type ResultService interface {
	// Form returns the entry form of a match. A played match comes back with
	// its sets so it can be edited.
	Form(ctx context.Context, auth apiclient.Auth, tournamentID, matchID int) (*ResultForm, error)
	// Submit validates the typed set rows and stores them. Invalid rows never
	// reach the backend. The winner is whatever the backend decides.
	Submit(ctx context.Context, auth apiclient.Auth, tournamentID, matchID int, rows []results.SetInput) (*ResultOutcome, error)
}

type resultService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	publisher      publisher
	redirectDelay  time.Duration
	logger         *slog.Logger
}

func NewResultService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	hub Broadcaster,
	viewCache cache.ViewCache,
	redirectDelay time.Duration,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		publisher:      publisher{hub: hub, cache: viewCache, logger: logger},
		redirectDelay:  redirectDelay,
		logger:         logger,
	}
}

func (s *resultService) Submit(ctx context.Context, auth apiclient.Auth, tournamentID, matchID int, rows []results.SetInput) (*ResultOutcome, error) {
	if _, err := results.Validate(rows); err != nil {
		return nil, validationError(err)
	}

	status, current, err := s.load(ctx, auth, tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	if err := checkResultAllowed(status, *current); err != nil {
		return nil, err
	}

	form := results.NewForm(matchID, rows)
	match, err := form.Submit(ctx, func(ctx context.Context, sets []models.SetScore) (*models.Match, error) {
		return s.matchRepo.SubmitResult(ctx, auth, matchID, models.ResultRequest{Sets: sets})
	})
	if err != nil {
		return nil, handleAPIError(err)
	}

	s.publisher.publish(ctx, tournamentID, live.TypeResultSaved, match)
	s.logger.Info("match result saved",
		slog.Int("tournament_id", tournamentID),
		slog.Int("match_id", matchID),
		slog.Bool("edit", current.Status == models.MatchPlayed),
	)
	return &ResultOutcome{Match: match, RedirectAfterMS: s.redirectDelay.Milliseconds()}, nil
}

func (s *resultService) Form(ctx context.Context, auth apiclient.Auth, tournamentID, matchID int) (*ResultForm, error) {
	status, current, err := s.load(ctx, auth, tournamentID, matchID)
	if err != nil {
		return nil, err
	}

	rows := results.FromScores(current.Sets)
	for len(rows) < results.MaxSets {
		rows = append(rows, results.SetInput{})
	}
	form := &ResultForm{Match: *current, Rows: rows, Editable: true}
	if err := checkResultAllowed(status, *current); err != nil {
		form.Editable = false
		form.Reason = err.Error()
	}
	return form, nil
}

// load fetches the tournament status and the match in parallel.
func (s *resultService) load(ctx context.Context, auth apiclient.Auth, tournamentID, matchID int) (models.TournamentStatus, *models.Match, error) {
	var (
		status  models.TournamentStatus
		matches []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.tournamentRepo.GetStatus(gctx, auth, tournamentID)
		status = st
		return err
	})
	g.Go(func() error {
		m, err := s.matchRepo.ListByTournament(gctx, auth, tournamentID)
		matches = m
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, handleAPIError(err)
	}

	for i := range matches {
		if matches[i].ID == matchID {
			return status, &matches[i], nil
		}
	}
	return "", nil, fmt.Errorf("%w: match %d in tournament %d", ErrNotFound, matchID, tournamentID)
}

// checkResultAllowed blocks entry once the tournament is finished and limits
// edits of played matches to the ongoing and groups_finished statuses.
func checkResultAllowed(status models.TournamentStatus, m models.Match) error {
	if status == models.StatusFinished {
		return ErrTournamentFinished
	}
	if m.Status == models.MatchPlayed && !status.ResultsEditable() {
		return ErrResultEditNotAllowed
	}
	return nil
}
