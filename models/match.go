package models

type MatchStage string

const (
	StageGroup     MatchStage = "group"
	StageRoundOf32 MatchStage = "round_of_32"
	StageRoundOf16 MatchStage = "round_of_16"
	StageQuarter   MatchStage = "quarter"
	StageSemi      MatchStage = "semi"
	StageFinal     MatchStage = "final"
)

// StageOrder lists stages in tournament order.
var StageOrder = []MatchStage{StageGroup, StageRoundOf32, StageRoundOf16, StageQuarter, StageSemi, StageFinal}

// Rank returns the position of the stage in StageOrder; unknown stages sort last.
func (s MatchStage) Rank() int {
	for i, st := range StageOrder {
		if st == s {
			return i
		}
	}
	return len(StageOrder)
}

func (s MatchStage) IsPlayoff() bool {
	return s != StageGroup && s.Rank() < len(StageOrder)
}

type MatchStatus string

const (
	MatchPending MatchStatus = "pending"
	MatchOngoing MatchStatus = "ongoing"
	MatchPlayed  MatchStatus = "played"
)

// SetScore is one set, games won by team A and team B.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

type Match struct {
	ID            int         `json:"id"`
	TournamentID  int         `json:"tournament_id"`
	Stage         MatchStage  `json:"stage"`
	GroupID       *int        `json:"group_id,omitempty"`
	TeamAID       *int        `json:"team_a_id,omitempty"`
	TeamBID       *int        `json:"team_b_id,omitempty"`
	Status        MatchStatus `json:"status"`
	ScheduledDate *string     `json:"scheduled_date,omitempty"`
	ScheduledTime *string     `json:"scheduled_time,omitempty"`
	CourtNumber   *int        `json:"court_number,omitempty"`
	Sets          []SetScore  `json:"sets,omitempty"`
	WinnerTeamID  *int        `json:"winner_team_id,omitempty"`
}

// Draggable reports whether the match may be moved on the schedule board.
func (m Match) Draggable() bool {
	return m.Status == MatchPending
}

// ScheduleRequest is the body of POST /matches/{id}/schedule.
type ScheduleRequest struct {
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	ScheduledTime string  `json:"scheduled_time"`
	CourtNumber   int     `json:"court_number"`
}

// ScheduleResponse carries the moved match and, when the target cell was taken,
// the match the backend moved out of it.
type ScheduleResponse struct {
	Updated Match  `json:"updated"`
	Swapped *Match `json:"swapped"`
}

// ResultRequest is the body of POST /matches/{id}/result.
type ResultRequest struct {
	Sets []SetScore `json:"sets"`
}
