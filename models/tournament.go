package models

// TournamentStatus mirrors the lifecycle reported by the backend.
type TournamentStatus string

const (
	StatusUpcoming       TournamentStatus = "upcoming"
	StatusOngoing        TournamentStatus = "ongoing"
	StatusGroupsFinished TournamentStatus = "groups_finished"
	StatusFinished       TournamentStatus = "finished"
)

// Tournament is a render-only copy of a backend tournament.
type Tournament struct {
	ID                   int              `json:"id"`
	Name                 string           `json:"name"`
	Description          *string          `json:"description,omitempty"`
	Location             *string          `json:"location,omitempty"`
	StartDate            *string          `json:"start_date,omitempty"`
	EndDate              *string          `json:"end_date,omitempty"`
	StartTime            *string          `json:"start_time,omitempty"`
	EndTime              *string          `json:"end_time,omitempty"`
	MatchDurationMinutes *int             `json:"match_duration_minutes,omitempty"`
	CourtsCount          *int             `json:"courts_count,omitempty"`
	Status               TournamentStatus `json:"status"`
}

// ScheduleConfigured reports whether the schedule grid can be rendered.
func (t Tournament) ScheduleConfigured() bool {
	if t.StartTime == nil || t.EndTime == nil || t.MatchDurationMinutes == nil || t.CourtsCount == nil {
		return false
	}
	return *t.MatchDurationMinutes > 0 && *t.CourtsCount > 0
}

// ResultsEditable reports whether played results may still be changed.
func (s TournamentStatus) ResultsEditable() bool {
	return s == StatusOngoing || s == StatusGroupsFinished
}

type TournamentStatusResponse struct {
	Status TournamentStatus `json:"status"`
}

// TournamentInput is the create/update payload sent to the backend.
type TournamentInput struct {
	Name                 string  `json:"name"`
	Description          *string `json:"description,omitempty"`
	Location             *string `json:"location,omitempty"`
	StartDate            *string `json:"start_date,omitempty"`
	EndDate              *string `json:"end_date,omitempty"`
	StartTime            *string `json:"start_time,omitempty"`
	EndTime              *string `json:"end_time,omitempty"`
	MatchDurationMinutes *int    `json:"match_duration_minutes,omitempty"`
	CourtsCount          *int    `json:"courts_count,omitempty"`
}
