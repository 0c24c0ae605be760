package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Team, error)
	Create(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.TeamInput) (*models.Team, error)
	Delete(ctx context.Context, auth apiclient.Auth, teamID int) error
}

type apiTeamRepository struct {
	client *apiclient.Client
}

func NewAPITeamRepository(client *apiclient.Client) TeamRepository {
	return &apiTeamRepository{client: client}
}

func (r *apiTeamRepository) ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Team, error) {
	var teams []models.Team
	err := r.client.Get(ctx, auth, fmt.Sprintf("/tournaments/%d/teams", tournamentID), &teams)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	return teams, nil
}

func (r *apiTeamRepository) Create(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.TeamInput) (*models.Team, error) {
	var team models.Team
	err := r.client.Post(ctx, auth, fmt.Sprintf("/tournaments/%d/teams", tournamentID), input, &team)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return &team, nil
}

func (r *apiTeamRepository) Delete(ctx context.Context, auth apiclient.Auth, teamID int) error {
	err := r.client.Delete(ctx, auth, fmt.Sprintf("/teams/%d", teamID))
	return checkNotFound(err, ErrTeamNotFound)
}
