package results

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/padelhub/padel-web/models"
)

const (
	MinSets = 2
	MaxSets = 3
	// MaxGames bounds one side of a set, super tie-breaks included.
	MaxGames = 99
)

var (
	ErrTooFewSets  = errors.New("must enter at least 2 sets")
	ErrTooManySets = errors.New("maximum 3 sets")
	ErrInvalidSet  = errors.New("invalid set score")
	ErrTiedSet     = errors.New("a set cannot end tied")
)

// SetInput is one row of the result form, exactly as typed.
type SetInput struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ValidationError reports the first rule a result form broke.
// Set is the 1-based position of the offending row, 0 for count rules.
type ValidationError struct {
	Err error
	Set int
}

func (e *ValidationError) Error() string {
	if e.Set > 0 {
		return fmt.Sprintf("set %d: %s", e.Set, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate applies the result rules in order and stops at the first violation:
// rows with both sides blank are discarded, 2 to 3 rows must remain, and every
// remaining row needs two finite non-negative numbers that differ.
// The winner is never derived here; the backend decides it.
func Validate(rows []SetInput) ([]models.SetScore, error) {
	kept := make([]SetInput, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.A) == "" && strings.TrimSpace(r.B) == "" {
			continue
		}
		kept = append(kept, r)
	}

	if len(kept) < MinSets {
		return nil, &ValidationError{Err: ErrTooFewSets}
	}
	if len(kept) > MaxSets {
		return nil, &ValidationError{Err: ErrTooManySets}
	}

	sets := make([]models.SetScore, 0, len(kept))
	for i, r := range kept {
		a, okA := parseGames(r.A)
		b, okB := parseGames(r.B)
		if !okA || !okB {
			return nil, &ValidationError{Err: ErrInvalidSet, Set: i + 1}
		}
		if a == b {
			return nil, &ValidationError{Err: ErrTiedSet, Set: i + 1}
		}
		sets = append(sets, models.SetScore{A: a, B: b})
	}
	return sets, nil
}

// parseGames accepts whole numbers from 0 to MaxGames.
func parseGames(raw string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxGames || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

// FromScores renders stored set scores back into form rows for editing a
// played match.
func FromScores(sets []models.SetScore) []SetInput {
	rows := make([]SetInput, len(sets))
	for i, s := range sets {
		rows[i] = SetInput{A: strconv.Itoa(s.A), B: strconv.Itoa(s.B)}
	}
	return rows
}
