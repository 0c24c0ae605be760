package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/results"
)

func setRows(pairs ...[2]string) []results.SetInput {
	out := make([]results.SetInput, len(pairs))
	for i, p := range pairs {
		out[i] = results.SetInput{A: p[0], B: p[1]}
	}
	return out
}

func TestResultSubmit(t *testing.T) {
	valid := setRows([2]string{"6", "4"}, [2]string{"3", "6"}, [2]string{"7", "5"})

	tests := []struct {
		name        string
		status      models.TournamentStatus
		matchStatus models.MatchStatus
		rows        []results.SetInput
		wantErr     error
		wantCalls   int
	}{
		{"first entry while ongoing", models.StatusOngoing, models.MatchPending, valid, nil, 1},
		{"edit while groups finished", models.StatusGroupsFinished, models.MatchPlayed, valid, nil, 1},
		{"edit before start", models.StatusUpcoming, models.MatchPlayed, valid, ErrResultEditNotAllowed, 0},
		{"tournament finished", models.StatusFinished, models.MatchPending, valid, ErrTournamentFinished, 0},
		{"tied set", models.StatusOngoing, models.MatchPending, setRows([2]string{"6", "4"}, [2]string{"5", "5"}), results.ErrTiedSet, 0},
		{"single set", models.StatusOngoing, models.MatchPending, setRows([2]string{"5", "3"}), results.ErrTooFewSets, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner := 10
			mr := &fakeMatchRepo{
				matches: []models.Match{{ID: 5, TournamentID: 1, Status: tt.matchStatus}},
				result:  &models.Match{ID: 5, Status: models.MatchPlayed, WinnerTeamID: &winner},
			}
			tr := &fakeTournamentRepo{tournament: models.Tournament{ID: 1, Status: tt.status}}
			hub := &fakeHub{}
			svc := NewResultService(tr, mr, hub, nil, 2*time.Second, discardLogger())

			out, err := svc.Submit(context.Background(), nil, 1, 5, tt.rows)

			if len(mr.submitted) != tt.wantCalls {
				t.Errorf("backend calls = %d, want %d", len(mr.submitted), tt.wantCalls)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if out.Match.WinnerTeamID == nil || *out.Match.WinnerTeamID != 10 || out.RedirectAfterMS != 2000 {
				t.Errorf("outcome = %+v", out)
			}
			if len(hub.sent) != 1 {
				t.Errorf("broadcasts = %d, want 1", len(hub.sent))
			}
		})
	}
}

func TestResultValidationKeepsSetIndex(t *testing.T) {
	svc := NewResultService(&fakeTournamentRepo{}, &fakeMatchRepo{}, nil, nil, 0, discardLogger())
	_, err := svc.Submit(context.Background(), nil, 1, 5, setRows([2]string{"6", "1"}, [2]string{"x", "1"}))

	var ve *results.ValidationError
	if !errors.Is(err, ErrValidationFailed) || !errors.As(err, &ve) || ve.Set != 2 {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestResultUnknownMatch(t *testing.T) {
	tr := &fakeTournamentRepo{tournament: models.Tournament{ID: 1, Status: models.StatusOngoing}}
	svc := NewResultService(tr, &fakeMatchRepo{}, nil, nil, 0, discardLogger())
	_, err := svc.Submit(context.Background(), nil, 1, 5, setRows([2]string{"6", "1"}, [2]string{"6", "1"}))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Submit() error = %v, want ErrNotFound", err)
	}
}

func TestResultBackendFailureSurfaces(t *testing.T) {
	tr := &fakeTournamentRepo{tournament: models.Tournament{ID: 1, Status: models.StatusOngoing}}
	mr := &fakeMatchRepo{matches: []models.Match{{ID: 5}}, err: apiErr(403)}
	svc := NewResultService(tr, mr, nil, nil, 0, discardLogger())
	_, err := svc.Submit(context.Background(), nil, 1, 5, setRows([2]string{"6", "1"}, [2]string{"6", "1"}))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Submit() error = %v, want ErrForbidden", err)
	}
}

func TestResultFormPrefillsPlayedMatch(t *testing.T) {
	tests := []struct {
		name     string
		status   models.TournamentStatus
		editable bool
	}{
		{"ongoing", models.StatusOngoing, true},
		{"finished", models.StatusFinished, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := &fakeMatchRepo{matches: []models.Match{{
				ID: 5, TournamentID: 1, Status: models.MatchPlayed,
				Sets: []models.SetScore{{A: 6, B: 4}, {A: 7, B: 5}},
			}}}
			tr := &fakeTournamentRepo{tournament: models.Tournament{ID: 1, Status: tt.status}}
			svc := NewResultService(tr, mr, nil, nil, 0, discardLogger())

			form, err := svc.Form(context.Background(), nil, 1, 5)
			if err != nil {
				t.Fatalf("Form() error = %v", err)
			}
			want := setRows([2]string{"6", "4"}, [2]string{"7", "5"}, [2]string{"", ""})
			if len(form.Rows) != len(want) {
				t.Fatalf("rows = %v, want %v", form.Rows, want)
			}
			for i := range want {
				if form.Rows[i] != want[i] {
					t.Errorf("row %d = %v, want %v", i, form.Rows[i], want[i])
				}
			}
			if form.Editable != tt.editable || (!tt.editable && form.Reason == "") {
				t.Errorf("editable = %v, reason %q", form.Editable, form.Reason)
			}
		})
	}
}

func TestResultFormUnknownMatch(t *testing.T) {
	svc := NewResultService(&fakeTournamentRepo{}, &fakeMatchRepo{}, nil, nil, 0, discardLogger())
	if _, err := svc.Form(context.Background(), nil, 1, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Form() error = %v, want ErrNotFound", err)
	}
}
