package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	List(ctx context.Context, auth apiclient.Auth) ([]models.Tournament, error)
	GetByID(ctx context.Context, auth apiclient.Auth, id int) (*models.Tournament, error)
	GetStatus(ctx context.Context, auth apiclient.Auth, id int) (models.TournamentStatus, error)
	Create(ctx context.Context, auth apiclient.Auth, input models.TournamentInput) (*models.Tournament, error)
	Update(ctx context.Context, auth apiclient.Auth, id int, input models.TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, auth apiclient.Auth, id int) error
	// Transition posts to one of the status endpoints: start, finish-groups, finish.
	Transition(ctx context.Context, auth apiclient.Auth, id int, action string) (*models.Tournament, error)
}

type apiTournamentRepository struct {
	client *apiclient.Client
}

func NewAPITournamentRepository(client *apiclient.Client) TournamentRepository {
	return &apiTournamentRepository{client: client}
}

func (r *apiTournamentRepository) List(ctx context.Context, auth apiclient.Auth) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := r.client.Get(ctx, auth, "/tournaments", &tournaments); err != nil {
		return nil, err
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}

func (r *apiTournamentRepository) GetByID(ctx context.Context, auth apiclient.Auth, id int) (*models.Tournament, error) {
	var t models.Tournament
	err := r.client.Get(ctx, auth, fmt.Sprintf("/tournaments/%d", id), &t)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return &t, nil
}

func (r *apiTournamentRepository) GetStatus(ctx context.Context, auth apiclient.Auth, id int) (models.TournamentStatus, error) {
	var resp models.TournamentStatusResponse
	err := r.client.Get(ctx, auth, fmt.Sprintf("/tournaments/%d/status", id), &resp)
	if err != nil {
		return "", checkNotFound(err, ErrTournamentNotFound)
	}
	return resp.Status, nil
}

func (r *apiTournamentRepository) Create(ctx context.Context, auth apiclient.Auth, input models.TournamentInput) (*models.Tournament, error) {
	var t models.Tournament
	if err := r.client.Post(ctx, auth, "/tournaments", input, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *apiTournamentRepository) Update(ctx context.Context, auth apiclient.Auth, id int, input models.TournamentInput) (*models.Tournament, error) {
	var t models.Tournament
	err := r.client.Patch(ctx, auth, fmt.Sprintf("/tournaments/%d", id), input, &t)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return &t, nil
}

func (r *apiTournamentRepository) Delete(ctx context.Context, auth apiclient.Auth, id int) error {
	err := r.client.Delete(ctx, auth, fmt.Sprintf("/tournaments/%d", id))
	return checkNotFound(err, ErrTournamentNotFound)
}

func (r *apiTournamentRepository) Transition(ctx context.Context, auth apiclient.Auth, id int, action string) (*models.Tournament, error) {
	var t models.Tournament
	err := r.client.Post(ctx, auth, fmt.Sprintf("/tournaments/%d/%s", id, action), nil, &t)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return &t, nil
}
