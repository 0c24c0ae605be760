package models

type Group struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	Teams        []Team `json:"teams"`
}

type GenerateGroupsInput struct {
	GroupsCount int `json:"groups_count"`
}

type GeneratePlayoffsInput struct {
	TeamsPerGroup int `json:"teams_per_group"`
}
