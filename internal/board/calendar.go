package board

import (
	"sort"
	"time"

	"github.com/sandeepkv93/organizeme/internal/model"
)

type CalendarMode string

const (
	CalendarModeDay   CalendarMode = "day"
	CalendarModeWeek  CalendarMode = "week"
	CalendarModeMonth CalendarMode = "month"
)

func (m CalendarMode) IsValid() bool {
	switch m {
	case CalendarModeDay, CalendarModeWeek, CalendarModeMonth:
		return true
	default:
		return false
	}
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DaysWithTasks returns the distinct days, ascending, on which at least one
// task is due.
func DaysWithTasks(tasks []model.Task, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool)
	out := make([]time.Time, 0)
	for _, t := range tasks {
		if !t.HasDueDate() {
			continue
		}
		day := StartOfDay(*t.DueDate, loc)
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// TasksOn returns the tasks due on the same calendar day as day, incomplete
// first and otherwise in their original order.
func TasksOn(tasks []model.Task, day time.Time, loc *time.Location) []model.Task {
	from := StartOfDay(day, loc)
	return TasksBetween(tasks, from, from.AddDate(0, 0, 1))
}

// TasksBetween returns tasks due in [from, to), incomplete first.
func TasksBetween(tasks []model.Task, from, to time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if !t.HasDueDate() {
			continue
		}
		if t.DueDate.Before(from) || !t.DueDate.Before(to) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].Completed && out[j].Completed
	})
	return out
}

// Window returns the [from, to) range the calendar shows for focus. Weeks
// start on Monday.
func Window(mode CalendarMode, focus time.Time, loc *time.Location) (time.Time, time.Time) {
	day := StartOfDay(focus, loc)
	switch mode {
	case CalendarModeDay:
		return day, day.AddDate(0, 0, 1)
	case CalendarModeMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return first, first.AddDate(0, 1, 0)
	default:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	}
}

// Shift moves focus by delta units of mode.
func Shift(mode CalendarMode, focus time.Time, delta int) time.Time {
	switch mode {
	case CalendarModeDay:
		return focus.AddDate(0, 0, delta)
	case CalendarModeMonth:
		return focus.AddDate(0, delta, 0)
	default:
		return focus.AddDate(0, 0, 7*delta)
	}
}
