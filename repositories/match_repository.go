package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Match, error)
	Schedule(ctx context.Context, auth apiclient.Auth, matchID int, req models.ScheduleRequest) (*models.ScheduleResponse, error)
	Start(ctx context.Context, auth apiclient.Auth, matchID int) (*models.Match, error)
	SubmitResult(ctx context.Context, auth apiclient.Auth, matchID int, req models.ResultRequest) (*models.Match, error)
	GenerateGroupMatches(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Match, error)
	GeneratePlayoffs(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.GeneratePlayoffsInput) ([]models.Match, error)
}

type apiMatchRepository struct {
	client *apiclient.Client
}

func NewAPIMatchRepository(client *apiclient.Client) MatchRepository {
	return &apiMatchRepository{client: client}
}

func (r *apiMatchRepository) ListByTournament(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Match, error) {
	var matches []models.Match
	err := r.client.Get(ctx, auth, fmt.Sprintf("/tournaments/%d/matches", tournamentID), &matches)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	return matches, nil
}

func (r *apiMatchRepository) Schedule(ctx context.Context, auth apiclient.Auth, matchID int, req models.ScheduleRequest) (*models.ScheduleResponse, error) {
	var resp models.ScheduleResponse
	err := r.client.Post(ctx, auth, fmt.Sprintf("/matches/%d/schedule", matchID), req, &resp)
	if err != nil {
		return nil, checkNotFound(err, ErrMatchNotFound)
	}
	return &resp, nil
}

func (r *apiMatchRepository) Start(ctx context.Context, auth apiclient.Auth, matchID int) (*models.Match, error) {
	var m models.Match
	err := r.client.Post(ctx, auth, fmt.Sprintf("/matches/%d/start", matchID), nil, &m)
	if err != nil {
		return nil, checkNotFound(err, ErrMatchNotFound)
	}
	return &m, nil
}

func (r *apiMatchRepository) SubmitResult(ctx context.Context, auth apiclient.Auth, matchID int, req models.ResultRequest) (*models.Match, error) {
	var m models.Match
	err := r.client.Post(ctx, auth, fmt.Sprintf("/matches/%d/result", matchID), req, &m)
	if err != nil {
		return nil, checkNotFound(err, ErrMatchNotFound)
	}
	return &m, nil
}

func (r *apiMatchRepository) GenerateGroupMatches(ctx context.Context, auth apiclient.Auth, tournamentID int) ([]models.Match, error) {
	var matches []models.Match
	err := r.client.Post(ctx, auth, fmt.Sprintf("/tournaments/%d/groups/matches", tournamentID), nil, &matches)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return matches, nil
}

func (r *apiMatchRepository) GeneratePlayoffs(ctx context.Context, auth apiclient.Auth, tournamentID int, input models.GeneratePlayoffsInput) ([]models.Match, error) {
	var matches []models.Match
	err := r.client.Post(ctx, auth, fmt.Sprintf("/tournaments/%d/playoffs/generate", tournamentID), input, &matches)
	if err != nil {
		return nil, checkNotFound(err, ErrTournamentNotFound)
	}
	return matches, nil
}
