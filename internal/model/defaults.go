package model

import "time"

// DefaultCategories is the first-run category set.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-1", Name: "Work", Color: "bg-blue-500"},
		{ID: "cat-2", Name: "Personal", Color: "bg-green-500"},
		{ID: "cat-3", Name: "Shopping", Color: "bg-yellow-500"},
	}
}

// DefaultTasks is the first-run task set. Due dates are relative to now.
func DefaultTasks(now time.Time) []Task {
	cats := DefaultCategories()
	work, personal, shopping := cats[0], cats[1], cats[2]
	in2 := now.Add(2 * 24 * time.Hour).UTC()
	in5 := now.Add(5 * 24 * time.Hour).UTC()
	return []Task{
		{
			ID:          "task-1",
			Title:       "Finalize Q3 report",
			Description: "Review data and complete the final report for the third quarter.",
			DueDate:     &in2,
			Category:    &work,
			Subtasks: []Subtask{
				{ID: "sub-1-1", Title: "Gather sales data", Completed: true},
				{ID: "sub-1-2", Title: "Draft executive summary"},
			},
		},
		{
			ID:          "task-2",
			Title:       "Book dentist appointment",
			Description: "Annual check-up.",
			DueDate:     &in5,
			Category:    &personal,
			Subtasks:    []Subtask{},
		},
		{
			ID:        "task-3",
			Title:     "Buy groceries",
			Completed: true,
			Category:  &shopping,
			Subtasks: []Subtask{
				{ID: "sub-3-1", Title: "Milk", Completed: true},
				{ID: "sub-3-2", Title: "Bread", Completed: true},
			},
		},
	}
}
