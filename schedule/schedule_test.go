package schedule

import (
	"reflect"
	"testing"

	"github.com/padelhub/padel-web/models"
)

func ptr[T any](v T) *T { return &v }

func labels(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label()
	}
	return out
}

func scheduled(id int, stage models.MatchStage, at string, court int) models.Match {
	return models.Match{ID: id, Stage: stage, Status: models.MatchPending, ScheduledTime: ptr(at), CourtNumber: ptr(court)}
}

func unscheduled(id int, stage models.MatchStage) models.Match {
	return models.Match{ID: id, Stage: stage, Status: models.MatchPending}
}

var twoCourtsMorning = Config{StartTime: "09:00", EndTime: "12:00", DurationMinutes: 60, Courts: 2}

func TestTimeSlots(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"end bound excluded", twoCourtsMorning, []string{"09:00", "10:00", "11:00"}},
		{"seconds accepted", Config{StartTime: "09:00:00", EndTime: "10:30:00", DurationMinutes: 45, Courts: 1}, []string{"09:00", "09:45"}},
		{"partial last slot dropped", Config{StartTime: "18:00", EndTime: "19:20", DurationMinutes: 40, Courts: 3}, []string{"18:00", "18:40"}},
		{"zero duration", Config{StartTime: "09:00", EndTime: "12:00", DurationMinutes: 0, Courts: 2}, nil},
		{"zero courts", Config{StartTime: "09:00", EndTime: "12:00", DurationMinutes: 60, Courts: 0}, nil},
		{"missing start", Config{EndTime: "12:00", DurationMinutes: 60, Courts: 2}, nil},
		{"garbage end", Config{StartTime: "09:00", EndTime: "noon", DurationMinutes: 60, Courts: 2}, nil},
		{"end before start", Config{StartTime: "12:00", EndTime: "09:00", DurationMinutes: 60, Courts: 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeSlots(tt.cfg)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(labels(got), tt.want) {
				t.Errorf("TimeSlots() = %v, want %v", labels(got), tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	for in, want := range map[string]int{"00:00": 0, "09:30": 570, "23:59:59": 1439} {
		got, err := ParseClock(in)
		if err != nil || got != want {
			t.Errorf("ParseClock(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "9", "24:00", "10:60", "10:5", "a:b", "10:00:99", "1:2:3:4"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) error = nil, want error", bad)
		}
	}
}

func TestConfigFor(t *testing.T) {
	tour := models.Tournament{StartTime: ptr("09:00"), EndTime: ptr("12:00"), MatchDurationMinutes: ptr(60), CourtsCount: ptr(2)}
	cfg, ok := ConfigFor(tour)
	if !ok || cfg != twoCourtsMorning {
		t.Fatalf("ConfigFor() = %+v, %v", cfg, ok)
	}

	tour.CourtsCount = nil
	if _, ok := ConfigFor(tour); ok {
		t.Fatal("ConfigFor() ok = true without courts_count")
	}
}

func cellAt(g Grid, row, col int) *models.Match {
	if row >= len(g.Rows) || col >= len(g.Rows[row].Cells) {
		return nil
	}
	return g.Rows[row].Cells[col]
}

func TestBuildExactPlacement(t *testing.T) {
	matches := []models.Match{scheduled(1, models.StageGroup, "10:00", 2)}

	g := Build(twoCourtsMorning, matches)

	if got := cellAt(g, 1, 1); got == nil || got.ID != 1 {
		t.Fatalf("cell[1][1] = %v, want match 1", got)
	}
	if g.Overflow != 0 {
		t.Errorf("Overflow = %d, want 0", g.Overflow)
	}
}

func TestBuildDuplicateClaimFallsToFillPass(t *testing.T) {
	matches := []models.Match{
		scheduled(1, models.StageGroup, "10:00:00", 2),
		scheduled(2, models.StageGroup, "10:00", 2),
	}

	g := Build(twoCourtsMorning, matches)

	if got := cellAt(g, 1, 1); got == nil || got.ID != 1 {
		t.Fatalf("cell[1][1] = %v, want first claimant", got)
	}
	if got := cellAt(g, 0, 0); got == nil || got.ID != 2 {
		t.Fatalf("cell[0][0] = %v, want displaced match 2", got)
	}
	if g.Overflow != 0 {
		t.Errorf("Overflow = %d, want 0", g.Overflow)
	}
}

func TestBuildDuplicateClaimOverflowsWhenFull(t *testing.T) {
	cfg := Config{StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60, Courts: 1}
	matches := []models.Match{
		scheduled(1, models.StageGroup, "09:00", 1),
		scheduled(2, models.StageGroup, "09:00", 1),
	}

	g := Build(cfg, matches)

	if g.Overflow != 1 {
		t.Fatalf("Overflow = %d, want 1", g.Overflow)
	}
	if len(matches) != 2 {
		t.Fatal("Build must not drop matches from the list")
	}
}

func TestBuildFillOrder(t *testing.T) {
	matches := []models.Match{
		unscheduled(30, models.StageFinal),
		unscheduled(20, models.StageSemi),
		scheduled(5, models.StageGroup, "09:00", 2),
		unscheduled(11, models.StageGroup),
		unscheduled(10, models.StageGroup),
		unscheduled(40, models.StageQuarter),
		scheduled(6, models.StageGroup, "13:00", 1), // not on the ladder
	}

	g := Build(twoCourtsMorning, matches)

	want := [][]int{
		{6, 5},
		{10, 11},
		{40, 20},
	}
	for r, row := range want {
		for c, id := range row {
			if got := cellAt(g, r, c); got == nil || got.ID != id {
				t.Errorf("cell[%d][%d] = %v, want %d", r, c, got, id)
			}
		}
	}
	if g.Overflow != 1 {
		t.Errorf("Overflow = %d, want 1 (the final)", g.Overflow)
	}
}

func TestBuildNumbersRowMajor(t *testing.T) {
	matches := []models.Match{
		scheduled(7, models.StageGroup, "10:00", 1),
		scheduled(3, models.StageGroup, "09:00", 2),
	}

	g := Build(twoCourtsMorning, matches)

	if g.Numbers[3] != 1 || g.Numbers[7] != 2 {
		t.Fatalf("Numbers = %v, want 3->1, 7->2", g.Numbers)
	}
}

func TestBuildNotConfigured(t *testing.T) {
	g := Build(Config{}, []models.Match{unscheduled(1, models.StageGroup)})
	if len(g.Rows) != 0 || g.Overflow != 0 || g.Courts != 0 {
		t.Fatalf("Build() on empty config = %+v, want empty board", g)
	}
}

func TestParseDrop(t *testing.T) {
	if d, ok := ParseDrop([]byte(`{"match_id":4,"scheduled_time":"10:00","court_number":2}`)); !ok || d.MatchID != 4 {
		t.Fatalf("ParseDrop(valid) = %+v, %v", d, ok)
	}
	for _, raw := range []string{``, `{`, `[]`, `{"match_id":0,"scheduled_time":"10:00","court_number":1}`,
		`{"match_id":4,"scheduled_time":"later","court_number":1}`, `{"match_id":4,"scheduled_time":"10:00"}`} {
		if _, ok := ParseDrop([]byte(raw)); ok {
			t.Errorf("ParseDrop(%q) ok = true, want false", raw)
		}
	}
}

func TestPlanDrop(t *testing.T) {
	played := scheduled(2, models.StageGroup, "09:00", 1)
	played.Status = models.MatchPlayed
	ongoing := scheduled(3, models.StageGroup, "09:00", 2)
	ongoing.Status = models.MatchOngoing
	matches := []models.Match{unscheduled(1, models.StageGroup), played, ongoing}

	req, ok := PlanDrop(twoCourtsMorning, matches, Drop{MatchID: 1, ScheduledTime: "11:00:00", CourtNumber: 2})
	if !ok || req.ScheduledTime != "11:00" || req.CourtNumber != 2 {
		t.Fatalf("PlanDrop(pending) = %+v, %v", req, ok)
	}

	ignored := []Drop{
		{MatchID: 2, ScheduledTime: "10:00", CourtNumber: 1},
		{MatchID: 3, ScheduledTime: "10:00", CourtNumber: 1},
		{MatchID: 99, ScheduledTime: "10:00", CourtNumber: 1},
		{MatchID: 1, ScheduledTime: "10:30", CourtNumber: 1},
		{MatchID: 1, ScheduledTime: "10:00", CourtNumber: 3},
	}
	for _, d := range ignored {
		if _, ok := PlanDrop(twoCourtsMorning, matches, d); ok {
			t.Errorf("PlanDrop(%+v) ok = true, want ignored", d)
		}
	}
}

func TestApplyReschedule(t *testing.T) {
	matches := []models.Match{
		scheduled(1, models.StageGroup, "09:00", 1),
		scheduled(2, models.StageGroup, "10:00", 1),
		scheduled(3, models.StageGroup, "11:00", 1),
	}

	moved := scheduled(1, models.StageGroup, "10:00", 1)
	out, changed := ApplyReschedule(matches, models.ScheduleResponse{Updated: moved})
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	if *out[0].ScheduledTime != "10:00" || *matches[0].ScheduledTime != "09:00" {
		t.Fatal("update must land in the copy only")
	}

	swapped := scheduled(2, models.StageGroup, "09:00", 1)
	out, changed = ApplyReschedule(matches, models.ScheduleResponse{Updated: moved, Swapped: &swapped})
	if changed != 2 {
		t.Fatalf("changed = %d, want 2", changed)
	}
	if *out[1].ScheduledTime != "09:00" || *out[2].ScheduledTime != "11:00" {
		t.Fatalf("unexpected list after swap: %+v", out)
	}
}
