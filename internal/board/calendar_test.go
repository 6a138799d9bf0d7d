package board

import (
	"testing"
	"time"

	"github.com/sandeepkv93/organizeme/internal/model"
)

func at(value string) *time.Time {
	out, _ := time.Parse(time.RFC3339, value)
	return &out
}

func TestTasksOnFiltersAndPutsIncompleteFirst(t *testing.T) {
	tasks := []model.Task{
		{ID: "done", Completed: true, DueDate: at("2026-02-10T09:00:00Z")},
		{ID: "open", DueDate: at("2026-02-10T18:00:00Z")},
		{ID: "other-day", DueDate: at("2026-02-11T09:00:00Z")},
		{ID: "undated"},
	}
	day := time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)
	got := TasksOn(tasks, day, time.UTC)
	if len(got) != 2 || got[0].ID != "open" || got[1].ID != "done" {
		t.Fatalf("unexpected tasks on day: %+v", got)
	}
}

func TestDaysWithTasksDistinctSorted(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", DueDate: at("2026-02-12T09:00:00Z")},
		{ID: "2", DueDate: at("2026-02-10T09:00:00Z")},
		{ID: "3", DueDate: at("2026-02-12T20:00:00Z")},
		{ID: "4"},
	}
	days := DaysWithTasks(tasks, time.UTC)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %v", days)
	}
	if days[0].Day() != 10 || days[1].Day() != 12 {
		t.Fatalf("unexpected days: %v", days)
	}
}

func TestWindow(t *testing.T) {
	focus := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC) // Wednesday
	cases := []struct {
		mode     CalendarMode
		from, to string
	}{
		{CalendarModeDay, "2026-02-11", "2026-02-12"},
		{CalendarModeWeek, "2026-02-09", "2026-02-16"},
		{CalendarModeMonth, "2026-02-01", "2026-03-01"},
	}
	for _, tc := range cases {
		from, to := Window(tc.mode, focus, time.UTC)
		if from.Format("2006-01-02") != tc.from || to.Format("2006-01-02") != tc.to {
			t.Fatalf("%s window = %s..%s, want %s..%s", tc.mode, from.Format("2006-01-02"), to.Format("2006-01-02"), tc.from, tc.to)
		}
	}
}

func TestShift(t *testing.T) {
	focus := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := Shift(CalendarModeWeek, focus, -1); got.Format("2006-01-02") != "2026-01-24" {
		t.Fatalf("unexpected week shift: %v", got)
	}
	if got := Shift(CalendarModeDay, focus, 1); got.Format("2006-01-02") != "2026-02-01" {
		t.Fatalf("unexpected day shift: %v", got)
	}
}
