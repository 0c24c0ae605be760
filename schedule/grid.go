package schedule

import (
	"sort"

	"github.com/padelhub/padel-web/models"
)

// Row is one time slot of the board with one cell per court. A nil cell is empty.
type Row struct {
	Slot  Slot
	Cells []*models.Match
}

// Grid is the schedule board derived from a flat match list. It is rebuilt on
// every request and never persisted.
type Grid struct {
	Slots  []Slot
	Courts int
	Rows   []Row
	// Overflow counts matches that found no free cell.
	Overflow int
	// Numbers maps match id to its display number, assigned row-major.
	Numbers map[int]int
}

// Build places matches on the board in two passes.
//
// Exact pass: a match with both scheduled_time and court_number sits at that slot
// and court, provided the slot exists in the ladder, the court is in range and the
// cell is still free. The first claimant of a cell wins.
//
// Fill pass: everything else, ordered by stage then id, goes into the free cells
// row by row, left to right.
func Build(cfg Config, matches []models.Match) Grid {
	slots := TimeSlots(cfg)
	g := Grid{
		Slots:   slots,
		Courts:  cfg.Courts,
		Numbers: map[int]int{},
	}
	if !cfg.Configured() {
		g.Courts = 0
		return g
	}
	if len(slots) == 0 {
		g.Overflow = len(matches)
		return g
	}

	slotIndex := make(map[string]int, len(slots))
	g.Rows = make([]Row, len(slots))
	for i, s := range slots {
		slotIndex[s.Label()] = i
		g.Rows[i] = Row{Slot: s, Cells: make([]*models.Match, cfg.Courts)}
	}

	placed := make([]bool, len(matches))
	for i := range matches {
		m := &matches[i]
		if m.ScheduledTime == nil || m.CourtNumber == nil {
			continue
		}
		row, ok := slotIndex[NormalizeClock(*m.ScheduledTime)]
		if !ok {
			continue
		}
		col := *m.CourtNumber - 1
		if col < 0 || col >= cfg.Courts {
			continue
		}
		if g.Rows[row].Cells[col] != nil {
			continue
		}
		g.Rows[row].Cells[col] = m
		placed[i] = true
	}

	pending := make([]*models.Match, 0, len(matches))
	for i := range matches {
		if !placed[i] {
			pending = append(pending, &matches[i])
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		ri, rj := pending[i].Stage.Rank(), pending[j].Stage.Rank()
		if ri != rj {
			return ri < rj
		}
		return pending[i].ID < pending[j].ID
	})

	next := 0
	for r := range g.Rows {
		for c := range g.Rows[r].Cells {
			if next >= len(pending) {
				break
			}
			if g.Rows[r].Cells[c] == nil {
				g.Rows[r].Cells[c] = pending[next]
				next++
			}
		}
	}
	g.Overflow = len(pending) - next

	n := 0
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell == nil {
				continue
			}
			if _, seen := g.Numbers[cell.ID]; !seen {
				n++
				g.Numbers[cell.ID] = n
			}
		}
	}
	return g
}
