// Package board derives the display projections of the task list: groups
// by category for the list view and per-day selections for the calendar.
package board

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sandeepkv93/organizeme/internal/model"
)

const NoCategory = "No Category"

type Group struct {
	Name  string
	Color string
	Tasks []model.Task
}

// GroupTasks partitions tasks by category name and orders both the groups and the
// tasks inside them. Empty groups are never returned.
func GroupTasks(tasks []model.Task) []Group {
	byName := make(map[string][]model.Task)
	colors := make(map[string]string)
	names := make([]string, 0)
	for _, t := range tasks {
		name := t.CategoryName()
		if name == "" {
			name = NoCategory
		}
		if _, seen := byName[name]; !seen {
			names = append(names, name)
			colors[name] = model.FallbackColor
			if t.Category != nil && t.Category.Color != "" {
				colors[name] = t.Category.Color
			}
		}
		byName[name] = append(byName[name], t)
	}

	coll := collate.New(language.English)
	sort.SliceStable(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if a == NoCategory {
			return false
		}
		if b == NoCategory {
			return true
		}
		return coll.CompareString(a, b) < 0
	})

	out := make([]Group, 0, len(names))
	for _, name := range names {
		items := byName[name]
		if len(items) == 0 {
			continue
		}
		SortTasks(items)
		out = append(out, Group{Name: name, Color: colors[name], Tasks: items})
	}
	return out
}

// SortTasks orders incomplete tasks before completed ones, then by ascending
// due date with undated tasks last. The sort is stable.
func SortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return taskLess(tasks[i], tasks[j])
	})
}

func taskLess(a, b model.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	switch {
	case a.HasDueDate() && b.HasDueDate():
		return a.DueDate.Before(*b.DueDate)
	case a.HasDueDate():
		return true
	default:
		return false
	}
}
