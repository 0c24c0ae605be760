package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/live"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/schedule"
)

// TransitionAction names a tournament status endpoint.
type TransitionAction string

const (
	ActionStart        TransitionAction = "start"
	ActionFinishGroups TransitionAction = "finish-groups"
	ActionFinish       TransitionAction = "finish"
)

// allowedFrom lists the statuses each action may be applied to.
var allowedFrom = map[TransitionAction][]models.TournamentStatus{
	ActionStart:        {models.StatusUpcoming},
	ActionFinishGroups: {models.StatusOngoing},
	ActionFinish:       {models.StatusOngoing, models.StatusGroupsFinished},
}

type TournamentService interface {
	List(ctx context.Context, auth apiclient.Auth) ([]models.Tournament, error)
	Get(ctx context.Context, auth apiclient.Auth, id int) (*models.Tournament, error)
	Create(ctx context.Context, auth apiclient.Auth, input models.TournamentInput) (*models.Tournament, error)
	Update(ctx context.Context, auth apiclient.Auth, id int, input models.TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, auth apiclient.Auth, id int) error
	Status(ctx context.Context, auth apiclient.Auth, id int) (models.TournamentStatus, error)
	Transition(ctx context.Context, auth apiclient.Auth, id int, action TransitionAction) (*models.Tournament, error)

	Groups(ctx context.Context, auth apiclient.Auth, id int) ([]models.Group, error)
	GenerateGroups(ctx context.Context, auth apiclient.Auth, id int, input models.GenerateGroupsInput) ([]models.Group, error)
	GenerateGroupMatches(ctx context.Context, auth apiclient.Auth, id int) ([]models.Match, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	matchRepo      repositories.MatchRepository
	publisher      publisher
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	hub Broadcaster,
	viewCache cache.ViewCache,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		matchRepo:      matchRepo,
		publisher:      publisher{hub: hub, cache: viewCache, logger: logger},
		logger:         logger,
	}
}

func (s *tournamentService) List(ctx context.Context, auth apiclient.Auth) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, auth)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return tournaments, nil
}

func (s *tournamentService) Get(ctx context.Context, auth apiclient.Auth, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, auth, id)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return t, nil
}

func (s *tournamentService) Create(ctx context.Context, auth apiclient.Auth, input models.TournamentInput) (*models.Tournament, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateTournamentInput(input); err != nil {
		return nil, validationError(err)
	}
	t, err := s.tournamentRepo.Create(ctx, auth, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.logger.Info("tournament created", slog.Int("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) Update(ctx context.Context, auth apiclient.Auth, id int, input models.TournamentInput) (*models.Tournament, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateTournamentInput(input); err != nil {
		return nil, validationError(err)
	}
	t, err := s.tournamentRepo.Update(ctx, auth, id, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.publisher.publish(ctx, id, "", nil)
	return t, nil
}

func (s *tournamentService) Delete(ctx context.Context, auth apiclient.Auth, id int) error {
	if err := s.tournamentRepo.Delete(ctx, auth, id); err != nil {
		return handleAPIError(err)
	}
	s.publisher.publish(ctx, id, "", nil)
	s.logger.Info("tournament deleted", slog.Int("tournament_id", id))
	return nil
}

func (s *tournamentService) Status(ctx context.Context, auth apiclient.Auth, id int) (models.TournamentStatus, error) {
	status, err := s.tournamentRepo.GetStatus(ctx, auth, id)
	if err != nil {
		return "", handleAPIError(err)
	}
	return status, nil
}

func (s *tournamentService) Transition(ctx context.Context, auth apiclient.Auth, id int, action TransitionAction) (*models.Tournament, error) {
	allowed, ok := allowedFrom[action]
	if !ok {
		return nil, validationError(fmt.Errorf("%w: unknown action %q", ErrTournamentInvalidStatusTransition, action))
	}

	current, err := s.Status(ctx, auth, id)
	if err != nil {
		return nil, err
	}
	if !statusIn(current, allowed) {
		return nil, fmt.Errorf("%w: cannot %s a tournament that is %s", ErrTournamentInvalidStatusTransition, action, current)
	}

	t, err := s.tournamentRepo.Transition(ctx, auth, id, string(action))
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.publisher.publish(ctx, id, live.TypeStandingsChanged, t)
	s.logger.Info("tournament status changed",
		slog.Int("tournament_id", id),
		slog.String("from", string(current)),
		slog.String("to", string(t.Status)),
	)
	return t, nil
}

func (s *tournamentService) Groups(ctx context.Context, auth apiclient.Auth, id int) ([]models.Group, error) {
	groups, err := s.groupRepo.ListByTournament(ctx, auth, id)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return groups, nil
}

func (s *tournamentService) GenerateGroups(ctx context.Context, auth apiclient.Auth, id int, input models.GenerateGroupsInput) ([]models.Group, error) {
	if input.GroupsCount <= 0 {
		return nil, validationError(ErrInvalidGroupsCount)
	}
	groups, err := s.groupRepo.Generate(ctx, auth, id, input)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.publisher.publish(ctx, id, live.TypeStandingsChanged, nil)
	return groups, nil
}

func (s *tournamentService) GenerateGroupMatches(ctx context.Context, auth apiclient.Auth, id int) ([]models.Match, error) {
	matches, err := s.matchRepo.GenerateGroupMatches(ctx, auth, id)
	if err != nil {
		return nil, handleAPIError(err)
	}
	s.publisher.publish(ctx, id, live.TypeMatchesRescheduled, matches)
	s.logger.Info("group matches generated", slog.Int("tournament_id", id), slog.Int("matches", len(matches)))
	return matches, nil
}

func statusIn(status models.TournamentStatus, allowed []models.TournamentStatus) bool {
	for _, a := range allowed {
		if a == status {
			return true
		}
	}
	return false
}

func validateTournamentInput(input models.TournamentInput) error {
	if input.Name == "" {
		return ErrTournamentNameRequired
	}
	if input.CourtsCount != nil && *input.CourtsCount < 0 {
		return ErrTournamentInvalidCourts
	}
	if input.MatchDurationMinutes != nil && *input.MatchDurationMinutes < 0 {
		return ErrTournamentInvalidDuration
	}

	var start, end int
	var err error
	if input.StartTime != nil {
		if start, err = schedule.ParseClock(*input.StartTime); err != nil {
			return ErrTournamentInvalidTime
		}
	}
	if input.EndTime != nil {
		if end, err = schedule.ParseClock(*input.EndTime); err != nil {
			return ErrTournamentInvalidTime
		}
	}
	if input.StartTime != nil && input.EndTime != nil && end <= start {
		return ErrTournamentInvalidTimeRange
	}

	if input.StartDate != nil && !isValidDate(*input.StartDate) {
		return ErrTournamentInvalidDate
	}
	if input.EndDate != nil && !isValidDate(*input.EndDate) {
		return ErrTournamentInvalidDate
	}
	// YYYY-MM-DD strings order like the dates they hold.
	if input.StartDate != nil && input.EndDate != nil && *input.EndDate < *input.StartDate {
		return ErrTournamentInvalidDateRange
	}
	return nil
}
