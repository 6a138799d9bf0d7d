package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	cat := Category{ID: "cat-1", Name: "Work", Color: "bg-blue-500"}
	task := Task{
		ID:       "task-1",
		Title:    "Finalize Q3 report",
		Category: &cat,
		Subtasks: []Subtask{{ID: "sub-1", Title: "Gather data"}},
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateMissingFields(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want error
	}{
		{"missing id", Task{Title: "x"}, ErrMissingID},
		{"missing title", Task{ID: "task-1", Title: "  "}, ErrMissingTitle},
		{"blank subtask", Task{ID: "task-1", Title: "x", Subtasks: []Subtask{{ID: "s", Title: ""}}}, ErrMissingTitle},
		{"bad category", Task{ID: "task-1", Title: "x", Category: &Category{ID: "c"}}, ErrMissingName},
	}
	for _, tc := range cases {
		err := tc.task.Validate()
		if err == nil || !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNewTaskSkipsBlankSubtasksAndNormalizesDue(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	due := time.Date(2024, 1, 3, 10, 0, 0, 0, loc)
	task := NewTask("  Write docs ", "", &due, nil, []string{"outline", " ", "draft"})

	if !strings.HasPrefix(task.ID, "task-") {
		t.Fatalf("unexpected id: %q", task.ID)
	}
	if task.Title != "Write docs" {
		t.Fatalf("unexpected title: %q", task.Title)
	}
	if len(task.Subtasks) != 2 || task.Subtasks[1].Title != "draft" {
		t.Fatalf("unexpected subtasks: %+v", task.Subtasks)
	}
	if task.DueDate.Location() != time.UTC || !task.DueDate.Equal(due) {
		t.Fatalf("expected due date normalized to UTC, got %v", task.DueDate)
	}
	if task.Completed {
		t.Fatal("expected new task to be incomplete")
	}
}

func TestEditKeepsSubtaskIdentityByPosition(t *testing.T) {
	orig := Task{
		ID:        "task-1",
		Title:     "Old",
		Completed: true,
		Subtasks: []Subtask{
			{ID: "sub-a", Title: "a", Completed: true},
			{ID: "sub-b", Title: "b"},
		},
	}
	edited := orig.Edit("New", "desc", nil, nil, []string{"a2", "b2", "c"})

	if edited.ID != "task-1" || edited.Title != "New" || !edited.Completed {
		t.Fatalf("unexpected edited task: %+v", edited)
	}
	if edited.Subtasks[0].ID != "sub-a" || !edited.Subtasks[0].Completed {
		t.Fatalf("expected first subtask to keep id and completion: %+v", edited.Subtasks[0])
	}
	if edited.Subtasks[1].ID != "sub-b" || edited.Subtasks[1].Completed {
		t.Fatalf("unexpected second subtask: %+v", edited.Subtasks[1])
	}
	if !strings.HasPrefix(edited.Subtasks[2].ID, "sub-") || edited.Subtasks[2].ID == "sub-b" {
		t.Fatalf("expected fresh id for new subtask: %+v", edited.Subtasks[2])
	}
	if orig.Title != "Old" || len(orig.Subtasks) != 2 {
		t.Fatal("edit must not modify the original task")
	}
}

func TestTaskJSONShape(t *testing.T) {
	due := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(Task{ID: "task-1", Title: "x", DueDate: &due})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(raw)
	if !strings.Contains(got, `"subtasks":[]`) {
		t.Fatalf("expected empty subtasks array, got %s", got)
	}
	if !strings.Contains(got, `"dueDate":"2024-01-03T00:00:00Z"`) {
		t.Fatalf("expected ISO due date, got %s", got)
	}
	if strings.Contains(got, "description") || strings.Contains(got, "category") {
		t.Fatalf("expected optional fields omitted, got %s", got)
	}

	var back Task
	if err := json.Unmarshal([]byte(`{"id":"t","title":"y","completed":true,"dueDate":"2024-01-03T00:00:00.000Z","subtasks":[]}`), &back); err != nil {
		t.Fatalf("unmarshal browser payload: %v", err)
	}
	if !back.Completed || !back.DueDate.Equal(due) {
		t.Fatalf("unexpected decoded task: %+v", back)
	}
}
