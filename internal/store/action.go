package store

import "github.com/sandeepkv93/organizeme/internal/model"

// Action is the closed set of state transitions understood by Reduce.
type Action interface {
	action()
}

type Initialize struct {
	Tasks      []model.Task
	Categories []model.Category
}

type AddTask struct {
	Task model.Task
}

type UpdateTask struct {
	Task model.Task
}

type DeleteTask struct {
	ID string
}

type ToggleTaskCompleted struct {
	ID string
}

type ToggleSubtaskCompleted struct {
	TaskID    string
	SubtaskID string
}

type AddCategory struct {
	Category model.Category
}

// DeleteCategory removes a category and clears it from every task that
// referenced it.
type DeleteCategory struct {
	ID string
}

func (Initialize) action()             {}
func (AddTask) action()                {}
func (UpdateTask) action()             {}
func (DeleteTask) action()             {}
func (ToggleTaskCompleted) action()    {}
func (ToggleSubtaskCompleted) action() {}
func (AddCategory) action()            {}
func (DeleteCategory) action()         {}
