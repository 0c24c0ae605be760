package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/brackets"
	"github.com/padelhub/padel-web/cache"
	"github.com/padelhub/padel-web/live"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/schedule"
)

type BoardCell struct {
	Match     models.Match `json:"match"`
	Number    int          `json:"number"`
	TeamA     string       `json:"team_a"`
	TeamB     string       `json:"team_b"`
	Draggable bool         `json:"draggable"`
}

type BoardRow struct {
	Slot string `json:"slot"`
	// Cells has one entry per court; empty cells are null.
	Cells []*BoardCell `json:"cells"`
}

// Board is the schedule grid of a tournament as rendered for organizers.
type Board struct {
	TournamentID int                     `json:"tournament_id"`
	Status       models.TournamentStatus `json:"status"`
	Configured   bool                    `json:"configured"`
	Courts       int                     `json:"courts"`
	Slots        []string                `json:"slots"`
	Rows         []BoardRow              `json:"rows"`
	Overflow     int                     `json:"overflow"`
	Warning      string                  `json:"warning,omitempty"`
	Groups       []models.Group          `json:"groups"`
}

// DropOutcome reports what a drop did. Applied is false when the drop was
// ignored without calling the backend. Matches is the loaded match list with
// the move applied, for boards that redraw without another fetch.
type DropOutcome struct {
	Applied bool           `json:"applied"`
	Changed int            `json:"changed"`
	Updated *models.Match  `json:"updated,omitempty"`
	Swapped *models.Match  `json:"swapped,omitempty"`
	Matches []models.Match `json:"matches,omitempty"`
}

type BoardService interface {
	Board(ctx context.Context, auth apiclient.Auth, tournamentID int) (*Board, error)
	// Drop handles a raw drag-and-drop payload. Malformed payloads and drops of
	// non-pending matches are ignored and return a non-applied outcome with no error.
	Drop(ctx context.Context, auth apiclient.Auth, tournamentID int, raw []byte) (*DropOutcome, error)
	StartMatch(ctx context.Context, auth apiclient.Auth, matchID int) (*models.Match, error)
}

type boardService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	groupRepo      repositories.GroupRepository
	publisher      publisher
	logger         *slog.Logger
}

func NewBoardService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	groupRepo repositories.GroupRepository,
	hub Broadcaster,
	viewCache cache.ViewCache,
	logger *slog.Logger,
) BoardService {
	return &boardService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		groupRepo:      groupRepo,
		publisher:      publisher{hub: hub, cache: viewCache, logger: logger},
		logger:         logger,
	}
}

// boardData is everything the board needs, loaded concurrently.
type boardData struct {
	tournament *models.Tournament
	matches    []models.Match
	teams      []models.Team
	groups     []models.Group
}

func (s *boardService) load(ctx context.Context, auth apiclient.Auth, tournamentID int, withLabels bool) (*boardData, error) {
	var d boardData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, auth, tournamentID)
		d.tournament = t
		return err
	})
	g.Go(func() error {
		m, err := s.matchRepo.ListByTournament(gctx, auth, tournamentID)
		d.matches = m
		return err
	})
	if withLabels {
		g.Go(func() error {
			t, err := s.teamRepo.ListByTournament(gctx, auth, tournamentID)
			d.teams = t
			return err
		})
		g.Go(func() error {
			gr, err := s.groupRepo.ListByTournament(gctx, auth, tournamentID)
			d.groups = gr
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, handleAPIError(err)
	}
	return &d, nil
}

func (s *boardService) Board(ctx context.Context, auth apiclient.Auth, tournamentID int) (*Board, error) {
	d, err := s.load(ctx, auth, tournamentID, true)
	if err != nil {
		return nil, err
	}

	cfg, configured := schedule.ConfigFor(*d.tournament)
	grid := schedule.Build(cfg, d.matches)
	labels := brackets.TeamLabels(d.teams)

	board := &Board{
		TournamentID: tournamentID,
		Status:       d.tournament.Status,
		Configured:   configured,
		Courts:       grid.Courts,
		Slots:        make([]string, len(grid.Slots)),
		Rows:         make([]BoardRow, len(grid.Rows)),
		Overflow:     grid.Overflow,
		Groups:       d.groups,
	}
	for i, slot := range grid.Slots {
		board.Slots[i] = slot.Label()
	}
	for i, row := range grid.Rows {
		cells := make([]*BoardCell, len(row.Cells))
		for c, m := range row.Cells {
			if m == nil {
				continue
			}
			cells[c] = &BoardCell{
				Match:     *m,
				Number:    grid.Numbers[m.ID],
				TeamA:     brackets.TeamLabel(m.TeamAID, labels),
				TeamB:     brackets.TeamLabel(m.TeamBID, labels),
				Draggable: m.Draggable(),
			}
		}
		board.Rows[i] = BoardRow{Slot: row.Slot.Label(), Cells: cells}
	}
	if grid.Overflow > 0 {
		board.Warning = fmt.Sprintf("%d matches exceed available slots", grid.Overflow)
	}
	return board, nil
}

func (s *boardService) Drop(ctx context.Context, auth apiclient.Auth, tournamentID int, raw []byte) (*DropOutcome, error) {
	drop, ok := schedule.ParseDrop(raw)
	if !ok {
		s.logger.Debug("ignoring malformed drop", slog.Int("tournament_id", tournamentID))
		return &DropOutcome{}, nil
	}

	d, err := s.load(ctx, auth, tournamentID, false)
	if err != nil {
		return nil, err
	}
	cfg, configured := schedule.ConfigFor(*d.tournament)
	if !configured {
		return nil, ErrScheduleNotConfigured
	}

	req, ok := schedule.PlanDrop(cfg, d.matches, drop)
	if !ok {
		s.logger.Debug("ignoring drop", slog.Int("tournament_id", tournamentID), slog.Int("match_id", drop.MatchID))
		return &DropOutcome{}, nil
	}

	resp, err := s.matchRepo.Schedule(ctx, auth, drop.MatchID, req)
	if err != nil {
		return nil, handleAPIError(err)
	}

	matches, changed := schedule.ApplyReschedule(d.matches, *resp)
	moved := []models.Match{resp.Updated}
	if resp.Swapped != nil {
		moved = append(moved, *resp.Swapped)
	}
	s.publisher.publish(ctx, tournamentID, live.TypeMatchesRescheduled, moved)

	updated := resp.Updated
	return &DropOutcome{Applied: true, Changed: changed, Updated: &updated, Swapped: resp.Swapped, Matches: matches}, nil
}

func (s *boardService) StartMatch(ctx context.Context, auth apiclient.Auth, matchID int) (*models.Match, error) {
	m, err := s.matchRepo.Start(ctx, auth, matchID)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusConflict) {
			return nil, fmt.Errorf("%w: %w", ErrMatchNotPending, err)
		}
		return nil, handleAPIError(err)
	}
	s.publisher.publish(ctx, m.TournamentID, live.TypeMatchUpdated, m)
	return m, nil
}
