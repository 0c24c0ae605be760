package standings

import (
	"sort"

	"github.com/padelhub/padel-web/models"
)

// Less orders standings by points, then set difference, then game difference,
// all descending. Rows equal on all three keys compare equal.
func Less(a, b models.Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if da, db := a.SetDifference(), b.SetDifference(); da != db {
		return da > db
	}
	return a.GameDiff > b.GameDiff
}

// Sort returns a sorted copy of rows. Ties beyond the three keys keep the order
// the backend sent, since its own final tie-break is not known here.
func Sort(rows []models.Standing) []models.Standing {
	out := make([]models.Standing, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// SortGroups sorts every group table in place and returns the slice for chaining.
func SortGroups(tables []models.GroupStandings) []models.GroupStandings {
	for i := range tables {
		tables[i].Rows = Sort(tables[i].Rows)
	}
	return tables
}
