package store

import "github.com/sandeepkv93/organizeme/internal/model"

// Reduce applies a to s. It returns s itself when the action changes nothing,
// so callers can detect transitions by pointer comparison.
func Reduce(s *State, a Action) *State {
	if s == nil {
		s = &State{}
	}
	switch act := a.(type) {
	case Initialize:
		return &State{
			Tasks:       cloneTasks(act.Tasks),
			Categories:  append([]model.Category{}, act.Categories...),
			Initialized: true,
		}
	case AddTask:
		tasks := make([]model.Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, act.Task)
		tasks = append(tasks, s.Tasks...)
		return s.withTasks(tasks)
	case UpdateTask:
		idx := s.indexOf(act.Task.ID)
		if idx < 0 {
			return s
		}
		tasks := append([]model.Task{}, s.Tasks...)
		tasks[idx] = act.Task
		return s.withTasks(tasks)
	case DeleteTask:
		idx := s.indexOf(act.ID)
		if idx < 0 {
			return s
		}
		tasks := make([]model.Task, 0, len(s.Tasks)-1)
		tasks = append(tasks, s.Tasks[:idx]...)
		tasks = append(tasks, s.Tasks[idx+1:]...)
		return s.withTasks(tasks)
	case ToggleTaskCompleted:
		idx := s.indexOf(act.ID)
		if idx < 0 {
			return s
		}
		tasks := append([]model.Task{}, s.Tasks...)
		tasks[idx].Completed = !tasks[idx].Completed
		return s.withTasks(tasks)
	case ToggleSubtaskCompleted:
		idx := s.indexOf(act.TaskID)
		if idx < 0 {
			return s
		}
		subIdx := -1
		for i, st := range s.Tasks[idx].Subtasks {
			if st.ID == act.SubtaskID {
				subIdx = i
				break
			}
		}
		if subIdx < 0 {
			return s
		}
		tasks := append([]model.Task{}, s.Tasks...)
		subtasks := append([]model.Subtask{}, tasks[idx].Subtasks...)
		subtasks[subIdx].Completed = !subtasks[subIdx].Completed
		tasks[idx].Subtasks = subtasks
		return s.withTasks(tasks)
	case AddCategory:
		if _, exists := model.FindCategoryByName(s.Categories, act.Category.Name); exists {
			return s
		}
		categories := make([]model.Category, 0, len(s.Categories)+1)
		categories = append(categories, s.Categories...)
		categories = append(categories, act.Category)
		return &State{Tasks: s.Tasks, Categories: categories, Initialized: s.Initialized}
	case DeleteCategory:
		catIdx := -1
		for i, c := range s.Categories {
			if c.ID == act.ID {
				catIdx = i
				break
			}
		}
		if catIdx < 0 {
			return s
		}
		categories := make([]model.Category, 0, len(s.Categories)-1)
		categories = append(categories, s.Categories[:catIdx]...)
		categories = append(categories, s.Categories[catIdx+1:]...)
		tasks := append([]model.Task{}, s.Tasks...)
		for i := range tasks {
			if tasks[i].Category != nil && tasks[i].Category.ID == act.ID {
				tasks[i].Category = nil
			}
		}
		return &State{Tasks: tasks, Categories: categories, Initialized: s.Initialized}
	default:
		return s
	}
}

func (s *State) withTasks(tasks []model.Task) *State {
	return &State{Tasks: tasks, Categories: s.Categories, Initialized: s.Initialized}
}

func (s *State) indexOf(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	copy(out, in)
	return out
}
