package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/padelhub/padel-web/models"
)

// State of a result form.
type State string

const (
	StateCollecting State = "collecting"
	StateSubmitting State = "submitting"
	StateSettled    State = "settled"
	StateFailed     State = "failed"
)

var ErrFormBusy = errors.New("result form is already submitting")

// SubmitFunc sends validated sets to the backend and returns the match it stored.
type SubmitFunc func(ctx context.Context, sets []models.SetScore) (*models.Match, error)

// Form drives one result entry: collecting -> submitting -> settled | failed.
// A validation failure keeps the form collecting and never calls submit.
// A failed submit can be retried from StateFailed.
type Form struct {
	MatchID int
	Rows    []SetInput
	State   State
	Err     error
	Result  *models.Match
}

func NewForm(matchID int, rows []SetInput) *Form {
	return &Form{MatchID: matchID, Rows: rows, State: StateCollecting}
}

func (f *Form) Submit(ctx context.Context, submit SubmitFunc) (*models.Match, error) {
	if f.State == StateSubmitting {
		return nil, ErrFormBusy
	}

	sets, err := Validate(f.Rows)
	if err != nil {
		f.State = StateCollecting
		f.Err = err
		return nil, err
	}

	f.State = StateSubmitting
	f.Err = nil
	match, err := submit(ctx, sets)
	if err != nil {
		f.State = StateFailed
		f.Err = err
		return nil, fmt.Errorf("submit result for match %d: %w", f.MatchID, err)
	}

	f.State = StateSettled
	f.Result = match
	return match, nil
}
