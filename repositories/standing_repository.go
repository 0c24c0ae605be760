package repositories

import (
	"context"
	"fmt"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

type StandingRepository interface {
	// ListByTournament returns nil while no group has standings yet.
	ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.GroupStandings, error)
}

type apiStandingRepository struct {
	client *apiclient.Client
}

func NewAPIStandingRepository(client *apiclient.Client) StandingRepository {
	return &apiStandingRepository{client: client}
}

func (r *apiStandingRepository) ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.GroupStandings, error) {
	var tables []models.GroupStandings
	found, err := r.client.GetMaybe(ctx, auth, fmt.Sprintf("/tournaments/%d/standings", tournamentID), &tables)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return tables, nil
}
