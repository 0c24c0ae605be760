package models

import (
	"fmt"
	"strings"
)

type Player struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name"`
}

// Team is a registered pair. Players holds zero to two entries.
type Team struct {
	ID           int      `json:"id"`
	TournamentID int      `json:"tournament_id"`
	Players      []Player `json:"players"`
}

// Label joins the player names, falling back to "Team #id".
func (t Team) Label() string {
	names := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		if n := strings.TrimSpace(p.Name); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Team #%d", t.ID)
	}
	return strings.Join(names, " / ")
}

type TeamInput struct {
	Players []Player `json:"players"`
}
