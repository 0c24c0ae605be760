package schedule

import (
	"encoding/json"

	"github.com/padelhub/padel-web/models"
)

// Drop is a drag-and-drop payload: a match released over a board cell.
type Drop struct {
	MatchID       int     `json:"match_id"`
	ScheduledTime string  `json:"scheduled_time"`
	CourtNumber   int     `json:"court_number"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
}

// ParseDrop decodes a raw drop payload. ok is false for anything malformed.
func ParseDrop(raw []byte) (d Drop, ok bool) {
	if err := json.Unmarshal(raw, &d); err != nil {
		return Drop{}, false
	}
	if d.MatchID <= 0 || d.CourtNumber <= 0 || NormalizeClock(d.ScheduledTime) == "" {
		return Drop{}, false
	}
	return d, true
}

// PlanDrop turns a drop into the reschedule request to send. ok is false when the
// drop must be ignored: unknown match, match not pending, or a target cell that is
// not on the board. Conflicts with other matches are left to the backend.
func PlanDrop(cfg Config, matches []models.Match, d Drop) (req models.ScheduleRequest, ok bool) {
	var target *models.Match
	for i := range matches {
		if matches[i].ID == d.MatchID {
			target = &matches[i]
			break
		}
	}
	if target == nil || !target.Draggable() {
		return models.ScheduleRequest{}, false
	}
	if d.CourtNumber < 1 || d.CourtNumber > cfg.Courts {
		return models.ScheduleRequest{}, false
	}

	label := NormalizeClock(d.ScheduledTime)
	onLadder := false
	for _, s := range TimeSlots(cfg) {
		if s.Label() == label {
			onLadder = true
			break
		}
	}
	if !onLadder {
		return models.ScheduleRequest{}, false
	}

	return models.ScheduleRequest{
		ScheduledDate: d.ScheduledDate,
		ScheduledTime: label,
		CourtNumber:   d.CourtNumber,
	}, true
}

// ApplyReschedule replaces the updated match, and the swapped one when present, by id.
// The input slice is not modified. It returns the new list and how many entries changed.
func ApplyReschedule(matches []models.Match, resp models.ScheduleResponse) ([]models.Match, int) {
	replacements := map[int]models.Match{resp.Updated.ID: resp.Updated}
	if resp.Swapped != nil {
		replacements[resp.Swapped.ID] = *resp.Swapped
	}
	return ReplaceByID(matches, replacements)
}

// ReplaceByID returns a copy of matches with every entry whose id is a key of
// replacements swapped for the replacement.
func ReplaceByID(matches []models.Match, replacements map[int]models.Match) ([]models.Match, int) {
	out := make([]models.Match, len(matches))
	changed := 0
	for i, m := range matches {
		if r, ok := replacements[m.ID]; ok {
			out[i] = r
			changed++
			continue
		}
		out[i] = m
	}
	return out, changed
}
