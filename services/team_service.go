package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
)

const maxTeamPlayers = 2

type TeamService interface {
	// List returns the confirmed teams of the tournament followed by any
	// placeholders still waiting for their create call.
	List(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]RosterItem, error)
	Create(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.TeamInput) (*models.Team, error)
	Delete(ctx context.Context, auth apiclient.Auth, tournamentID, teamID int) error
}

type teamService struct {
	teamRepo  repositories.TeamRepository
	publisher publisher
	logger    *slog.Logger

	mu      sync.Mutex
	rosters map[rosterKey]*Roster
}

// rosterKey scopes placeholders to the session that created them.
type rosterKey struct {
	token        string
	tournamentID int
}

func newRosterKey(auth apiclient.Auth, tournamentID int) rosterKey {
	k := rosterKey{tournamentID: tournamentID}
	if auth != nil {
		k.token = auth.BearerToken()
	}
	return k
}

func NewTeamService(teamRepo repositories.TeamRepository, viewCache cache.ViewCache, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		publisher: publisher{cache: viewCache, logger: logger},
		logger:    logger,
		rosters:   make(map[rosterKey]*Roster),
	}
}

// addPending inserts a placeholder in the roster of a session, creating the roster.
func (s *teamService) addPending(key rosterKey, players []models.Player) (*Roster, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rosters[key]
	if !ok {
		r = &Roster{}
		s.rosters[key] = r
	}
	return r, r.AddPending(players)
}

func (s *teamService) lookup(key rosterKey) *Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosters[key]
}

// release drops the roster once no create call of the session is in flight.
func (s *teamService) release(key rosterKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rosters[key]; ok && !r.HasPending() {
		delete(s.rosters, key)
	}
}

func (s *teamService) List(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]RosterItem, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, auth, tournamentID)
	if err != nil {
		return nil, handleAPIError(err)
	}
	r := s.lookup(newRosterKey(auth, tournamentID))
	if r == nil {
		r = &Roster{}
	}
	r.Reset(teams)
	return r.Items(), nil
}

func (s *teamService) Create(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.TeamInput) (*models.Team, error) {
	players := make([]models.Player, 0, len(input.Players))
	for _, p := range input.Players {
		if name := strings.TrimSpace(p.Name); name != "" {
			players = append(players, models.Player{ID: p.ID, Name: name})
		}
	}
	if len(players) == 0 || len(players) > maxTeamPlayers {
		return nil, validationError(ErrTeamPlayersRequired)
	}

	key := newRosterKey(auth, tournamentID)
	r, tempID := s.addPending(key, players)
	defer s.release(key)

	team, err := s.teamRepo.Create(ctx, auth, tournamentID, models.TeamInput{Players: players})
	if err != nil {
		r.Remove(models.PendingTeam{TempID: tempID}.Key())
		s.logger.Warn("team creation failed, placeholder removed",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return nil, handleAPIError(err)
	}

	r.Confirm(tempID, *team)
	s.publisher.publish(ctx, tournamentID, "", nil)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, auth apiclient.Auth, tournamentID, teamID int) error {
	if err := s.teamRepo.Delete(ctx, auth, teamID); err != nil {
		return handleAPIError(err)
	}
	if r := s.lookup(newRosterKey(auth, tournamentID)); r != nil {
		r.Remove(models.ConfirmedTeam{Team: models.Team{ID: teamID}}.Key())
	}
	s.publisher.publish(ctx, tournamentID, "", nil)
	return nil
}
