package models

// Standing is one team's aggregate row as computed by the backend.
type Standing struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name,omitempty"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Lost         int    `json:"lost"`
	SetsFor      int    `json:"sets_for"`
	SetsAgainst  int    `json:"sets_against"`
	SetDiff      *int   `json:"set_diff,omitempty"`
	GamesFor     int    `json:"games_for"`
	GamesAgainst int    `json:"games_against"`
	GameDiff     int    `json:"game_diff"`
	Points       int    `json:"points"`
}

// SetDifference returns set_diff, deriving it from the set totals when absent.
func (s Standing) SetDifference() int {
	if s.SetDiff != nil {
		return *s.SetDiff
	}
	return s.SetsFor - s.SetsAgainst
}

// GroupStandings is the standings table of a single group.
type GroupStandings struct {
	GroupID   int        `json:"group_id"`
	GroupName string     `json:"group_name"`
	Rows      []Standing `json:"standings"`
}
