package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

type fakeTournamentRepo struct {
	tournament  models.Tournament
	err         error
	transitions []string
}

func (f *fakeTournamentRepo) List(context.Context, apiclient.Auth) ([]models.Tournament, error) {
	return []models.Tournament{f.tournament}, f.err
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, _ apiclient.Auth, id int) (*models.Tournament, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := f.tournament
	return &t, nil
}

func (f *fakeTournamentRepo) GetStatus(context.Context, apiclient.Auth, int) (models.TournamentStatus, error) {
	return f.tournament.Status, f.err
}

func (f *fakeTournamentRepo) Create(_ context.Context, _ apiclient.Auth, in models.TournamentInput) (*models.Tournament, error) {
	return &models.Tournament{ID: 1, Name: in.Name, Status: models.StatusUpcoming}, f.err
}

func (f *fakeTournamentRepo) Update(_ context.Context, _ apiclient.Auth, id int, in models.TournamentInput) (*models.Tournament, error) {
	return &models.Tournament{ID: id, Name: in.Name}, f.err
}

func (f *fakeTournamentRepo) Delete(context.Context, apiclient.Auth, int) error { return f.err }

func (f *fakeTournamentRepo) Transition(_ context.Context, _ apiclient.Auth, id int, action string) (*models.Tournament, error) {
	f.transitions = append(f.transitions, action)
	t := f.tournament
	t.Status = models.StatusOngoing
	return &t, f.err
}

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   []models.Match
	schedule  *models.ScheduleResponse
	result    *models.Match
	err       error
	scheduled []models.ScheduleRequest
	submitted [][]models.SetScore
}

func (f *fakeMatchRepo) ListByTournament(context.Context, apiclient.Auth, int) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Match(nil), f.matches...), nil
}

func (f *fakeMatchRepo) Schedule(_ context.Context, _ apiclient.Auth, _ int, req models.ScheduleRequest) (*models.ScheduleResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, req)
	return f.schedule, f.err
}

func (f *fakeMatchRepo) Start(_ context.Context, _ apiclient.Auth, id int) (*models.Match, error) {
	return &models.Match{ID: id, TournamentID: 1, Status: models.MatchOngoing}, f.err
}

func (f *fakeMatchRepo) SubmitResult(_ context.Context, _ apiclient.Auth, _ int, req models.ResultRequest) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, req.Sets)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeMatchRepo) GenerateGroupMatches(context.Context, apiclient.Auth, int) ([]models.Match, error) {
	return f.matches, f.err
}

func (f *fakeMatchRepo) GeneratePlayoffs(context.Context, apiclient.Auth, int, models.GeneratePlayoffsInput) ([]models.Match, error) {
	return f.matches, f.err
}

type fakeTeamRepo struct {
	teams   []models.Team
	err     error
	created chan struct{}
	release chan struct{}
}

func (f *fakeTeamRepo) ListByTournament(context.Context, apiclient.Auth, int) ([]models.Team, error) {
	return f.teams, nil
}

func (f *fakeTeamRepo) Create(_ context.Context, _ apiclient.Auth, tid int, in models.TeamInput) (*models.Team, error) {
	if f.created != nil {
		f.created <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Team{ID: 99, TournamentID: tid, Players: in.Players}, nil
}

func (f *fakeTeamRepo) Delete(context.Context, apiclient.Auth, int) error { return f.err }

type fakeGroupRepo struct {
	groups []models.Group
}

func (f *fakeGroupRepo) ListByTournament(context.Context, apiclient.Auth, int) ([]models.Group, error) {
	return f.groups, nil
}

func (f *fakeGroupRepo) Generate(context.Context, apiclient.Auth, int, models.GenerateGroupsInput) ([]models.Group, error) {
	return f.groups, nil
}

type fakeStandingRepo struct {
	tables []models.GroupStandings
	calls  int
	onList func()
}

func (f *fakeStandingRepo) ListByTournament(context.Context, apiclient.Auth, int) ([]models.GroupStandings, error) {
	f.calls++
	if f.onList != nil {
		f.onList()
	}
	return f.tables, nil
}

type fakeUserRepo struct {
	login *models.LoginResponse
	err   error
}

func (f *fakeUserRepo) Login(context.Context, models.Credentials) (*models.LoginResponse, error) {
	return f.login, f.err
}

func (f *fakeUserRepo) Me(context.Context, apiclient.Auth) (*models.Me, error) {
	return &models.Me{ID: 1}, f.err
}

func (f *fakeUserRepo) ForgotPassword(context.Context, models.ForgotPasswordInput) error { return f.err }
func (f *fakeUserRepo) ResetPassword(context.Context, models.ResetPasswordInput) error  { return f.err }

type fakeAdminRepo struct {
	repositories.AdminRepository
	ticket     models.Ticket
	replies    int
	paymentErr error
	payments   []models.PaymentInput
}

func (f *fakeAdminRepo) GetTicket(context.Context, apiclient.Auth, int) (*models.Ticket, error) {
	t := f.ticket
	return &t, nil
}

func (f *fakeAdminRepo) ReplyTicket(_ context.Context, _ apiclient.Auth, _ int, in models.TicketReplyInput) (*models.Ticket, error) {
	f.replies++
	t := f.ticket
	t.Replies = append(t.Replies, models.TicketReply{Body: in.Body, FromAdmin: true})
	return &t, nil
}

func (f *fakeAdminRepo) CreatePayment(_ context.Context, _ apiclient.Auth, in models.PaymentInput) (*models.Payment, error) {
	f.payments = append(f.payments, in)
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return &models.Payment{ID: 1, AccountID: in.AccountID, Amount: in.Amount, Currency: in.Currency}, nil
}

type broadcast struct {
	room    string
	msgType string
}

type fakeHub struct {
	mu   sync.Mutex
	sent []broadcast
}

func (h *fakeHub) BroadcastToRoom(room, msgType string, _ interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, broadcast{room: room, msgType: msgType})
}

func apiErr(status int) error {
	return &apiclient.Error{Status: status, Message: http.StatusText(status)}
}
