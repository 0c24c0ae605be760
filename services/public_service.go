package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/padelhub/padel-web/brackets"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/standings"
)

// PublicView is the read-only tournament page shown to spectators.
type PublicView struct {
	Tournament models.Tournament        `json:"tournament"`
	Standings  []models.GroupStandings  `json:"standings"`
	Fixtures   []brackets.GroupFixtures `json:"fixtures"`
	Bracket    []brackets.Round         `json:"bracket"`
	Matches    []models.Match           `json:"matches"`
}

type PublicService interface {
	// View returns the public page of a tournament. cached reports whether it
	// was served from the view cache.
	View(ctx context.Context, tournamentID int) (view *PublicView, cached bool, err error)
}

type publicService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	groupRepo      repositories.GroupRepository
	standingRepo   repositories.StandingRepository
	viewCache      cache.ViewCache
	logger         *slog.Logger
}

func NewPublicService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	groupRepo repositories.GroupRepository,
	standingRepo repositories.StandingRepository,
	viewCache cache.ViewCache,
	logger *slog.Logger,
) PublicService {
	return &publicService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		groupRepo:      groupRepo,
		standingRepo:   standingRepo,
		viewCache:      viewCache,
		logger:         logger,
	}
}

func (s *publicService) View(ctx context.Context, tournamentID int) (*PublicView, bool, error) {
	key := cache.PublicViewKey(tournamentID)
	generation := int64(-1)
	if s.viewCache != nil {
		raw, err := s.viewCache.Get(ctx, tournamentID)
		switch {
		case err == nil:
			var view PublicView
			if err := json.Unmarshal(raw, &view); err == nil {
				return &view, true, nil
			}
			s.logger.Warn("discarding unreadable cached view", slog.String("key", key))
		case !errors.Is(err, cache.ErrMiss):
			s.logger.Warn("public view cache unavailable", slog.String("key", key), slog.Any("error", err))
		}
		// Read before building so an invalidation during the build wins.
		if gen, err := s.viewCache.Generation(ctx, tournamentID); err == nil {
			generation = gen
		}
	}

	view, err := s.build(ctx, tournamentID)
	if err != nil {
		return nil, false, err
	}

	if s.viewCache != nil && generation >= 0 {
		if raw, err := json.Marshal(view); err == nil {
			err := s.viewCache.Set(ctx, tournamentID, generation, raw)
			switch {
			case errors.Is(err, cache.ErrStale):
				s.logger.Debug("public view changed while building, not cached", slog.String("key", key))
			case err != nil:
				s.logger.Warn("failed to cache public view", slog.String("key", key), slog.Any("error", err))
			}
		}
	}
	return view, false, nil
}

// build loads everything anonymously; the backend decides what is public.
func (s *publicService) build(ctx context.Context, tournamentID int) (*PublicView, error) {
	var (
		tournament *models.Tournament
		matches    []models.Match
		teams      []models.Team
		groups     []models.Group
		tables     []models.GroupStandings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tournament, err = s.tournamentRepo.GetByID(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.teamRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		groups, err = s.groupRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		tables, err = s.standingRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleAPIError(err)
	}

	bracket := brackets.Bracket(matches, brackets.TeamLabels(teams))
	if bracket == nil {
		bracket = []brackets.Round{}
	}
	if tables == nil {
		tables = []models.GroupStandings{}
	}
	return &PublicView{
		Tournament: *tournament,
		Standings:  standings.SortGroups(tables),
		Fixtures:   brackets.Fixtures(groups, matches),
		Bracket:    bracket,
		Matches:    matches,
	}, nil
}
