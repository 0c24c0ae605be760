package repositories

import (
	"context"
	"fmt"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

type GroupRepository interface {
	// ListByTournament returns an empty slice while groups have not been generated.
	ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Group, error)
	Generate(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.GenerateGroupsInput) ([]models.Group, error)
}

type apiGroupRepository struct {
	client *apiclient.Client
}

func NewAPIGroupRepository(client *apiclient.Client) GroupRepository {
	return &apiGroupRepository{client: client}
}

func (r *apiGroupRepository) ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Group, error) {
	var groups []models.Group
	found, err := r.client.GetMaybe(ctx, auth, fmt.Sprintf("/tournaments/%d/groups", tournamentID), &groups)
	if err != nil {
		return nil, err
	}
	if !found || groups == nil {
		return []models.Group{}, nil
	}
	return groups, nil
}

func (r *apiGroupRepository) Generate(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.GenerateGroupsInput) ([]models.Group, error) {
	var groups []models.Group
	err := r.client.Post(ctx, auth, fmt.Sprintf("/tournaments/%d/groups/generate", tournamentID), input, &groups)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return groups, nil
}
