package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingID    = errors.New("model: id is required")
	ErrMissingTitle = errors.New("model: title is required")
	ErrMissingName  = errors.New("model: name is required")
)

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// NewTask builds an incomplete task with a fresh id. Blank subtask titles are
// skipped.
func NewTask(title, description string, due *time.Time, category *Category, subtaskTitles []string) Task {
	t := Task{
		ID:          NewID(PrefixTask),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		DueDate:     NormalizeDue(due),
		Category:    category,
		Subtasks:    make([]Subtask, 0, len(subtaskTitles)),
	}
	for _, st := range subtaskTitles {
		st = strings.TrimSpace(st)
		if st == "" {
			continue
		}
		t.Subtasks = append(t.Subtasks, Subtask{ID: NewID(PrefixSubtask), Title: st})
	}
	return t
}

// Edit returns a copy of t with the editable fields replaced. Subtask ids and
// completion flags are kept by position, mirroring how the edit form maps its
// rows back onto the existing subtasks.
func (t Task) Edit(title, description string, due *time.Time, category *Category, subtaskTitles []string) Task {
	out := Task{
		ID:          t.ID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Completed:   t.Completed,
		DueDate:     NormalizeDue(due),
		Category:    category,
		Subtasks:    make([]Subtask, 0, len(subtaskTitles)),
	}
	idx := 0
	for _, st := range subtaskTitles {
		st = strings.TrimSpace(st)
		if st == "" {
			continue
		}
		sub := Subtask{Title: st}
		if idx < len(t.Subtasks) {
			sub.ID = t.Subtasks[idx].ID
			sub.Completed = t.Subtasks[idx].Completed
		} else {
			sub.ID = NewID(PrefixSubtask)
		}
		out.Subtasks = append(out.Subtasks, sub)
		idx++
	}
	return out
}

func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	out := plain(t)
	if out.Subtasks == nil {
		out.Subtasks = []Subtask{}
	}
	return json.Marshal(out)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task: %w", ErrMissingID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task %s: %w", t.ID, ErrMissingTitle)
	}
	for i, st := range t.Subtasks {
		if strings.TrimSpace(st.ID) == "" {
			return fmt.Errorf("task %s subtask %d: %w", t.ID, i, ErrMissingID)
		}
		if strings.TrimSpace(st.Title) == "" {
			return fmt.Errorf("task %s subtask %s: %w", t.ID, st.ID, ErrMissingTitle)
		}
	}
	if t.Category != nil {
		if err := t.Category.Validate(); err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	return nil
}

func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

func (t Task) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

func (t Task) CompletedSubtasks() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}

// NormalizeDue drops zero times and pins the rest to UTC so persisted values
// compare equal after a reload.
func NormalizeDue(due *time.Time) *time.Time {
	if due == nil || due.IsZero() {
		return nil
	}
	v := due.UTC()
	return &v
}
