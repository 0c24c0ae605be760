package brackets

import (
	"sort"

	"github.com/padelhub/padel-web/models"
)

// matchesPerStage is the size of each playoff round in a full bracket.
var matchesPerStage = map[models.MatchStage]int{
	models.StageRoundOf32: 16,
	models.StageRoundOf16: 8,
	models.StageQuarter:   4,
	models.StageSemi:      2,
	models.StageFinal:     1,
}

type BracketMatch struct {
	OrderInRound int           `json:"order_in_round"`
	Match        *models.Match `json:"match,omitempty"`
	TeamA        string        `json:"team_a"`
	TeamB        string        `json:"team_b"`
	WinnerTeamID *int          `json:"winner_team_id,omitempty"`
	// IsPlaceholder marks a slot whose match the backend has not created yet.
	IsPlaceholder bool `json:"is_placeholder"`
}

type Round struct {
	Stage   models.MatchStage `json:"stage"`
	Matches []BracketMatch    `json:"matches"`
}

// Bracket lays playoff matches out by stage, from the earliest stage present down
// to the final. Missing later matches are filled with placeholders so every round
// has its full size. Group matches are ignored.
func Bracket(matches []models.Match, labels map[int]string) []Round {
	byStage := map[models.MatchStage][]models.Match{}
	first := len(models.StageOrder)
	for _, m := range matches {
		if !m.Stage.IsPlayoff() {
			continue
		}
		byStage[m.Stage] = append(byStage[m.Stage], m)
		if r := m.Stage.Rank(); r < first {
			first = r
		}
	}
	if len(byStage) == 0 {
		return nil
	}

	rounds := make([]Round, 0, len(models.StageOrder)-first)
	for _, stage := range models.StageOrder[first:] {
		stageMatches := byStage[stage]
		sort.Slice(stageMatches, func(i, j int) bool { return stageMatches[i].ID < stageMatches[j].ID })

		size := matchesPerStage[stage]
		if len(stageMatches) > size {
			size = len(stageMatches)
		}

		round := Round{Stage: stage, Matches: make([]BracketMatch, 0, size)}
		for i := 0; i < size; i++ {
			bm := BracketMatch{OrderInRound: i + 1, TeamA: "TBD", TeamB: "TBD"}
			if i < len(stageMatches) {
				m := stageMatches[i]
				bm.Match = &m
				bm.TeamA = TeamLabel(m.TeamAID, labels)
				bm.TeamB = TeamLabel(m.TeamBID, labels)
				bm.WinnerTeamID = m.WinnerTeamID
			} else {
				bm.IsPlaceholder = true
			}
			round.Matches = append(round.Matches, bm)
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// TeamLabel resolves a team id to its label; a missing id is "TBD".
func TeamLabel(id *int, labels map[int]string) string {
	if id == nil {
		return "TBD"
	}
	if l, ok := labels[*id]; ok {
		return l
	}
	return models.Team{ID: *id}.Label()
}
