package brackets

import (
	"sort"

	"github.com/padelhub/padel-web/models"
)

// GroupFixtures is the list of group-stage matches of one group.
type GroupFixtures struct {
	Group   models.Group   `json:"group"`
	Matches []models.Match `json:"matches"`
}

// Fixtures splits group-stage matches by group, keeping the group order and
// sorting each group's matches by id.
func Fixtures(groups []models.Group, matches []models.Match) []GroupFixtures {
	index := make(map[int]int, len(groups))
	out := make([]GroupFixtures, len(groups))
	for i, g := range groups {
		index[g.ID] = i
		out[i] = GroupFixtures{Group: g, Matches: []models.Match{}}
	}
	for _, m := range matches {
		if m.Stage != models.StageGroup || m.GroupID == nil {
			continue
		}
		if i, ok := index[*m.GroupID]; ok {
			out[i].Matches = append(out[i].Matches, m)
		}
	}
	for i := range out {
		ms := out[i].Matches
		sort.Slice(ms, func(a, b int) bool { return ms[a].ID < ms[b].ID })
	}
	return out
}

// TeamLabels indexes team display labels by id.
func TeamLabels(teams []models.Team) map[int]string {
	labels := make(map[int]string, len(teams))
	for _, t := range teams {
		labels[t.ID] = t.Label()
	}
	return labels
}
