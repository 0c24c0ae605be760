package models

import "strconv"

// RosterEntry is either a ConfirmedTeam or a PendingTeam.
type RosterEntry interface {
	rosterEntry()
	Key() string
}

// ConfirmedTeam is a team the backend has acknowledged.
type ConfirmedTeam struct {
	Team Team
}

// PendingTeam is a locally inserted placeholder awaiting the create call.
type PendingTeam struct {
	TempID  string
	Players []Player
}

func (ConfirmedTeam) rosterEntry() {}
func (PendingTeam) rosterEntry()   {}

func (c ConfirmedTeam) Key() string { return "team:" + strconv.Itoa(c.Team.ID) }
func (p PendingTeam) Key() string   { return "pending:" + p.TempID }
