package results

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/padelhub/padel-web/models"
)

func rows(pairs ...[2]string) []SetInput {
	out := make([]SetInput, len(pairs))
	for i, p := range pairs {
		out[i] = SetInput{A: p[0], B: p[1]}
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      []SetInput
		want    []models.SetScore
		wantErr error
		wantSet int
	}{
		{
			name:    "single set",
			in:      rows([2]string{"5", "3"}),
			wantErr: ErrTooFewSets,
		},
		{
			name:    "four sets",
			in:      rows([2]string{"6", "4"}, [2]string{"6", "4"}, [2]string{"6", "4"}, [2]string{"6", "2"}),
			wantErr: ErrTooManySets,
		},
		{
			name:    "tied third set",
			in:      rows([2]string{"6", "4"}, [2]string{"4", "6"}, [2]string{"6", "6"}),
			wantErr: ErrTiedSet,
			wantSet: 3,
		},
		{
			name: "three valid sets",
			in:   rows([2]string{"6", "4"}, [2]string{"4", "6"}, [2]string{"6", "2"}),
			want: []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}, {A: 6, B: 2}},
		},
		{
			name: "blank rows discarded",
			in:   rows([2]string{"", ""}, [2]string{"7", "5"}, [2]string{" ", ""}, [2]string{"6", "3"}),
			want: []models.SetScore{{A: 7, B: 5}, {A: 6, B: 3}},
		},
		{
			name:    "blank rows do not count",
			in:      rows([2]string{"6", "1"}, [2]string{"", ""}, [2]string{"", ""}),
			wantErr: ErrTooFewSets,
		},
		{
			name:    "one side blank",
			in:      rows([2]string{"6", "1"}, [2]string{"6", ""}),
			wantErr: ErrInvalidSet,
			wantSet: 2,
		},
		{
			name:    "negative",
			in:      rows([2]string{"-1", "6"}, [2]string{"6", "1"}),
			wantErr: ErrInvalidSet,
			wantSet: 1,
		},
		{
			name:    "not a number",
			in:      rows([2]string{"6", "1"}, [2]string{"six", "1"}),
			wantErr: ErrInvalidSet,
			wantSet: 2,
		},
		{
			name:    "infinite",
			in:      rows([2]string{"Inf", "1"}, [2]string{"6", "1"}),
			wantErr: ErrInvalidSet,
			wantSet: 1,
		},
		{
			name:    "overflowing value",
			in:      rows([2]string{"1e19", "6"}, [2]string{"6", "4"}),
			wantErr: ErrInvalidSet,
			wantSet: 1,
		},
		{
			name:    "huge values are not a tie",
			in:      rows([2]string{"6", "4"}, [2]string{"1e300", "1e299"}),
			wantErr: ErrInvalidSet,
			wantSet: 2,
		},
		{
			name:    "above max games",
			in:      rows([2]string{"6", "4"}, [2]string{"100", "98"}),
			wantErr: ErrInvalidSet,
			wantSet: 2,
		},
		{
			name: "long super tie-break",
			in:   rows([2]string{"6", "4"}, [2]string{"4", "6"}, [2]string{"99", "97"}),
			want: []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}, {A: 99, B: 97}},
		},
		{
			name:    "fraction",
			in:      rows([2]string{"6.5", "4"}, [2]string{"6", "4"}),
			wantErr: ErrInvalidSet,
			wantSet: 1,
		},
		{
			name:    "invalid reported before later tie",
			in:      rows([2]string{"6", "1"}, [2]string{"x", "1"}, [2]string{"3", "3"}),
			wantErr: ErrInvalidSet,
			wantSet: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.in)
			if tt.wantErr != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) || !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				if ve.Set != tt.wantSet {
					t.Errorf("Set = %d, want %d", ve.Set, tt.wantSet)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Err: ErrTiedSet, Set: 3}
	if err.Error() != "set 3: a set cannot end tied" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFormNeverSubmitsInvalidRows(t *testing.T) {
	f := NewForm(1, rows([2]string{"5", "3"}))
	called := false
	_, err := f.Submit(context.Background(), func(context.Context, []models.SetScore) (*models.Match, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, ErrTooFewSets) {
		t.Fatalf("Submit() error = %v", err)
	}
	if called {
		t.Fatal("submit called for invalid form")
	}
	if f.State != StateCollecting {
		t.Errorf("State = %s, want collecting", f.State)
	}
}

func TestFormSettlesWithServerMatch(t *testing.T) {
	f := NewForm(8, rows([2]string{"6", "4"}, [2]string{"4", "6"}, [2]string{"6", "2"}))
	winner := 11
	var sent []models.SetScore
	m, err := f.Submit(context.Background(), func(_ context.Context, sets []models.SetScore) (*models.Match, error) {
		sent = sets
		return &models.Match{ID: 8, Status: models.MatchPlayed, Sets: sets, WinnerTeamID: &winner}, nil
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if want := []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}, {A: 6, B: 2}}; !reflect.DeepEqual(sent, want) {
		t.Errorf("sent = %v, want %v", sent, want)
	}
	if f.State != StateSettled || m.WinnerTeamID == nil || *m.WinnerTeamID != 11 {
		t.Errorf("form = %+v, match = %+v", f, m)
	}
}

func TestFormFailureAllowsRetry(t *testing.T) {
	f := NewForm(8, rows([2]string{"6", "4"}, [2]string{"6", "4"}))
	boom := errors.New("request failed")

	if _, err := f.Submit(context.Background(), func(context.Context, []models.SetScore) (*models.Match, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v", err)
	}
	if f.State != StateFailed {
		t.Fatalf("State = %s, want failed", f.State)
	}

	if _, err := f.Submit(context.Background(), func(context.Context, []models.SetScore) (*models.Match, error) {
		return &models.Match{ID: 8, Status: models.MatchPlayed}, nil
	}); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if f.State != StateSettled {
		t.Errorf("State = %s, want settled", f.State)
	}
}

func TestFromScores(t *testing.T) {
	got := FromScores([]models.SetScore{{A: 6, B: 0}, {A: 7, B: 6}})
	if !reflect.DeepEqual(got, rows([2]string{"6", "0"}, [2]string{"7", "6"})) {
		t.Errorf("FromScores() = %v", got)
	}
}
