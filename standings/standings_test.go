package standings

import (
	"testing"

	"github.com/padelhub/padel-web/models"
)

func intp(v int) *int { return &v }

func ids(rows []models.Standing) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.TeamID
	}
	return out
}

func TestGameDiffBreaksTie(t *testing.T) {
	a := models.Standing{TeamID: 1, Points: 10, SetDiff: intp(2), GameDiff: -1}
	b := models.Standing{TeamID: 2, Points: 10, SetDiff: intp(2), GameDiff: 3}

	got := Sort([]models.Standing{a, b})
	if got[0].TeamID != 2 {
		t.Fatalf("order = %v, want team 2 first", ids(got))
	}
}

func TestSortKeys(t *testing.T) {
	rows := []models.Standing{
		{TeamID: 1, Points: 3, SetsFor: 3, SetsAgainst: 4, GameDiff: 0},
		{TeamID: 2, Points: 6, SetsFor: 4, SetsAgainst: 2, GameDiff: 1},
		{TeamID: 3, Points: 6, SetsFor: 5, SetsAgainst: 1, GameDiff: -2},
		{TeamID: 4, Points: 3, SetsFor: 3, SetsAgainst: 4, GameDiff: 0},
		{TeamID: 5, Points: 0, SetDiff: intp(-6), GameDiff: -20},
	}

	got := ids(Sort(rows))
	want := []int{3, 2, 1, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if rows[0].TeamID != 1 {
		t.Fatal("Sort must not reorder its input")
	}
}

func TestFullTieKeepsServerOrder(t *testing.T) {
	rows := []models.Standing{
		{TeamID: 9, Points: 4, SetDiff: intp(1), GameDiff: 2},
		{TeamID: 4, Points: 4, SetDiff: intp(1), GameDiff: 2},
		{TeamID: 7, Points: 4, SetDiff: intp(1), GameDiff: 2},
	}
	got := ids(Sort(rows))
	if got[0] != 9 || got[1] != 4 || got[2] != 7 {
		t.Fatalf("order = %v, want server order 9,4,7", got)
	}
}

func TestSortGroups(t *testing.T) {
	tables := []models.GroupStandings{{GroupID: 1, Rows: []models.Standing{{TeamID: 1}, {TeamID: 2, Points: 3}}}}
	SortGroups(tables)
	if tables[0].Rows[0].TeamID != 2 {
		t.Fatalf("group not sorted: %v", ids(tables[0].Rows))
	}
}
