package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/padelhub/padel-web/models"
)

var ErrInvalidClock = errors.New("invalid clock time")

// Slot is a start time expressed in minutes since midnight.
type Slot int

// Label renders the slot as HH:MM.
func (s Slot) Label() string {
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight. Seconds are ignored.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}
	}
	return h*60 + m, nil
}

// NormalizeClock returns value as HH:MM, or "" when it does not parse.
func NormalizeClock(value string) string {
	minutes, err := ParseClock(value)
	if err != nil {
		return ""
	}
	return Slot(minutes).Label()
}

// Config is the subset of a tournament the grid depends on.
type Config struct {
	StartTime       string
	EndTime         string
	DurationMinutes int
	Courts          int
}

// ConfigFor extracts the grid configuration. ok is false when the tournament
// has not been configured for scheduling yet.
func ConfigFor(t models.Tournament) (cfg Config, ok bool) {
	if !t.ScheduleConfigured() {
		return Config{}, false
	}
	return Config{
		StartTime:       *t.StartTime,
		EndTime:         *t.EndTime,
		DurationMinutes: *t.MatchDurationMinutes,
		Courts:          *t.CourtsCount,
	}, true
}

// Configured reports whether the settings describe a usable grid.
func (c Config) Configured() bool {
	if c.DurationMinutes <= 0 || c.Courts <= 0 {
		return false
	}
	if _, err := ParseClock(c.StartTime); err != nil {
		return false
	}
	_, err := ParseClock(c.EndTime)
	return err == nil
}

// TimeSlots builds the ladder t0, t0+d, t0+2d, ... keeping every slot whose match
// still ends by the end time. Missing or non-positive settings yield an empty ladder:
// that is the "not configured yet" state, not an error.
func TimeSlots(cfg Config) []Slot {
	if !cfg.Configured() {
		return nil
	}
	start, _ := ParseClock(cfg.StartTime)
	end, _ := ParseClock(cfg.EndTime)

	var slots []Slot
	for t := start; t+cfg.DurationMinutes <= end; t += cfg.DurationMinutes {
		slots = append(slots, Slot(t))
	}
	return slots
}
