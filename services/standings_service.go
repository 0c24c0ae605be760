package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/brackets"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/live"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/standings"
)

type StandingsService interface {
	// Standings returns every group table sorted by points, set difference and
	// game difference. Tables not computed yet come back as an empty list.
	Standings(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.GroupStandings, error)
	Fixtures(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]brackets.GroupFixtures, error)
	Bracket(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]brackets.Round, error)
	GeneratePlayoffs(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.GeneratePlayoffsInput) ([]brackets.Round, error)
}

type standingsService struct {
	standingRepo repositories.StandingRepository
	groupRepo    repositories.GroupRepository
	matchRepo    repositories.MatchRepository
	teamRepo     repositories.TeamRepository
	publisher    publisher
	logger       *slog.Logger
}

func NewStandingsService(
	standingRepo repositories.StandingRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	hub Broadcaster,
	viewCache cache.ViewCache,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		standingRepo: standingRepo,
		groupRepo:    groupRepo,
		matchRepo:    matchRepo,
		teamRepo:     teamRepo,
		publisher:    publisher{hub: hub, cache: viewCache, logger: logger},
		logger:       logger,
	}
}

func (s *standingsService) Standings(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.GroupStandings, error) {
	tables, err := s.standingRepo.ListByTournament(ctx, auth, tournamentID)
	if err != nil {
		return nil, handleAPIError(err)
	}
	if tables == nil {
		return []models.GroupStandings{}, nil
	}
	return standings.SortGroups(tables), nil
}

func (s *standingsService) Fixtures(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]brackets.GroupFixtures, error) {
	var (
		groups  []models.Group
		matches []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gr, err := s.groupRepo.ListByTournament(gctx, auth, tournamentID)
		groups = gr
		return err
	})
	g.Go(func() error {
		m, err := s.matchRepo.ListByTournament(gctx, auth, tournamentID)
		matches = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleAPIError(err)
	}
	return brackets.Fixtures(groups, matches), nil
}

func (s *standingsService) Bracket(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]brackets.Round, error) {
	var (
		matches []models.Match
		teams   []models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.matchRepo.ListByTournament(gctx, auth, tournamentID)
		matches = m
		return err
	})
	g.Go(func() error {
		t, err := s.teamRepo.ListByTournament(gctx, auth, tournamentID)
		teams = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleAPIError(err)
	}

	rounds := brackets.Bracket(matches, brackets.TeamLabels(teams))
	if rounds == nil {
		return []brackets.Round{}, nil
	}
	return rounds, nil
}

func (s *standingsService) GeneratePlayoffs(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.GeneratePlayoffsInput) ([]brackets.Round, error) {
	if input.TeamsPerGroup <= 0 {
		return nil, validationError(ErrInvalidTeamsPerGroup)
	}
	matches, err := s.matchRepo.GeneratePlayoffs(ctx, auth, tournamentID, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.publisher.publish(ctx, tournamentID, live.TypeMatchesRescheduled, matches)
	s.logger.Info("playoffs generated", slog.Int("tournament_id", tournamentID), slog.Int("matches", len(matches)))
	return s.Bracket(ctx, auth, tournamentID)
}
