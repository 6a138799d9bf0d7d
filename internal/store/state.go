package store

import "github.com/sandeepkv93/organizeme/internal/model"

// State is an immutable snapshot of the application. Reduce never modifies a
// State it was given; a changed state is always a new pointer.
type State struct {
	Tasks       []model.Task
	Categories  []model.Category
	Initialized bool
}

func (s *State) Task(id string) (model.Task, bool) {
	if s == nil {
		return model.Task{}, false
	}
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *State) CategoryByName(name string) (model.Category, bool) {
	if s == nil {
		return model.Category{}, false
	}
	return model.FindCategoryByName(s.Categories, name)
}
