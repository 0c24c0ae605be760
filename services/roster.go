package services

import (
	"strconv"
	"sync"

	"github.com/padelhub/padel-web/models"
)

// RosterItem is one line of a tournament's team list as shown to organizers.
type RosterItem struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Pending bool            `json:"pending"`
	Team    *models.Team    `json:"team,omitempty"`
	Players []models.Player `json:"players"`
}

// Roster keeps the team entries of one tournament, including locally inserted
// placeholders whose create call has not returned yet.
type Roster struct {
	mu      sync.Mutex
	entries []models.RosterEntry
	seq     int
}

// Reset replaces the confirmed entries with teams and keeps pending ones at the end.
func (r *Roster) Reset(teams []models.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]models.RosterEntry, 0, len(teams)+len(r.entries))
	for _, t := range teams {
		entries = append(entries, models.ConfirmedTeam{Team: t})
	}
	for _, e := range r.entries {
		if p, ok := e.(models.PendingTeam); ok {
			entries = append(entries, p)
		}
	}
	r.entries = entries
}

// AddPending appends a placeholder and returns its temporary id.
func (r *Roster) AddPending(players []models.Player) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	tempID := strconv.Itoa(r.seq)
	r.entries = append(r.entries, models.PendingTeam{TempID: tempID, Players: players})
	return tempID
}

// Confirm replaces the placeholder in place with the created team. When the team
// is already listed the placeholder is dropped instead.
func (r *Roster) Confirm(tempID string, team models.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()

	confirmed := models.ConfirmedTeam{Team: team}
	pending := -1
	listed := false
	for i, e := range r.entries {
		switch e.Key() {
		case models.PendingTeam{TempID: tempID}.Key():
			pending = i
		case confirmed.Key():
			listed = true
		}
	}

	switch {
	case listed && pending >= 0:
		// A list call already picked the team up from the backend.
		r.entries = append(r.entries[:pending], r.entries[pending+1:]...)
	case listed:
	case pending >= 0:
		r.entries[pending] = confirmed
	default:
		r.entries = append(r.entries, confirmed)
	}
}

// Remove drops the entry with the given key. Removing a placeholder is the
// rollback of a failed create.
func (r *Roster) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.Key() == key {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// HasPending reports whether any create call is still in flight.
func (r *Roster) HasPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if _, ok := e.(models.PendingTeam); ok {
			return true
		}
	}
	return false
}

func (r *Roster) Items() []RosterItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]RosterItem, 0, len(r.entries))
	for _, e := range r.entries {
		switch v := e.(type) {
		case models.ConfirmedTeam:
			team := v.Team
			items = append(items, RosterItem{Key: v.Key(), Label: team.Label(), Team: &team, Players: team.Players})
		case models.PendingTeam:
			label := models.Team{Players: v.Players}.Label()
			items = append(items, RosterItem{Key: v.Key(), Label: label, Pending: true, Players: v.Players})
		}
	}
	return items
}
