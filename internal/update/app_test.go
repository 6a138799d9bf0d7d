package update

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/store"
	"github.com/sandeepkv93/organizeme/internal/suggest"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, fetcher *suggest.Fetcher) Model {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)
	now := func() time.Time { return fixedNow }
	st := store.Open(context.Background(), nil, store.Options{Logger: logger, Now: now})
	t.Cleanup(func() { _ = st.Close() })
	return NewModel(context.Background(), st, Options{
		Fetcher: fetcher,
		Logger:  logger,
		Now:     now,
		Pick:    func(int) int { return 0 },
	})
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+n":
			msg = tea.KeyMsg{Type: tea.KeyCtrlN}
		case "ctrl+y":
			msg = tea.KeyMsg{Type: tea.KeyCtrlY}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func rowIDs(m Model) []string {
	var ids []string
	for _, t := range m.taskRows() {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, nil)
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected default view %q, got %q", ViewTasks, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	got := strings.Join(rowIDs(m), ",")
	if got != "task-2,task-3,task-1" {
		t.Fatalf("unexpected row order: %s", got)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2")
	if m.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", m.CurrentView)
	}
	m = press(t, m, "1")
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", m.CurrentView)
	}

	updated, _ := m.Update(SwitchViewMsg{View: View("Unknown")})
	if updated.(Model).CurrentView != ViewTasks {
		t.Fatal("expected view unchanged for unknown view")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t, nil)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	if s := updated.(Model).Status; s.Text != "" || s.IsError {
		t.Fatalf("expected cleared status, got: %+v", s)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestModel(t, nil)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestToggleCompletedShowsToast(t *testing.T) {
	m := newTestModel(t, nil)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected toast timer command")
	}
	task, _ := m.State.Task("task-2")
	if !task.Completed {
		t.Fatal("expected task-2 completed")
	}
	if m.Toast == nil || m.Toast.Title != "Great job!" || !strings.Contains(m.Toast.Body, "Book dentist appointment") {
		t.Fatalf("unexpected toast: %+v", m.Toast)
	}
	if !strings.Contains(m.View(), "Great job!") {
		t.Fatal("expected toast in view")
	}

	updated, _ = m.Update(ClearToastMsg{seq: m.Toast.seq + 1})
	if updated.(Model).Toast == nil {
		t.Fatal("stale clear must not hide the current toast")
	}
	updated, _ = m.Update(ClearToastMsg{seq: m.Toast.seq})
	m = updated.(Model)
	if m.Toast != nil {
		t.Fatal("expected toast cleared")
	}

	// completed tasks sort last, so task-2 moved; find it again
	for i, id := range rowIDs(m) {
		if id == "task-2" {
			m.Tasks.Cursor = i
		}
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = updated.(Model)
	if task, _ := m.State.Task("task-2"); task.Completed {
		t.Fatal("expected task-2 reopened")
	}
	if m.Toast != nil {
		t.Fatal("reopening must not celebrate")
	}
}

func TestToggleSubtaskAndDelete(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "j", "j")
	if sel, _ := m.selectedTask(); sel.ID != "task-1" {
		t.Fatalf("expected task-1 selected, got %s", sel.ID)
	}
	m = press(t, m, "]", "x")
	task, _ := m.State.Task("task-1")
	if !task.Subtasks[1].Completed || task.Completed {
		t.Fatalf("expected only the second subtask toggled: %+v", task)
	}

	m = press(t, m, "d")
	if _, ok := m.State.Task("task-1"); ok {
		t.Fatal("expected task-1 deleted")
	}
	if m.Tasks.Cursor != 1 {
		t.Fatalf("expected cursor clamped to last row, got %d", m.Tasks.Cursor)
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "a")
	if !m.Form.Active || m.Form.Focus != FieldTitle {
		t.Fatalf("expected add form focused on title: %+v", m.Form)
	}

	m = press(t, m, "ctrl+s")
	if m.Form.Err != "Title is required" || !m.Form.Active {
		t.Fatalf("expected validation error, got %q", m.Form.Err)
	}

	m = press(t, m, "Plan trip", "tab", "Pack light", "tab", "2026-04-01", "tab", "right", "tab", "Book hotel", "enter", "Rent car")
	m = press(t, m, "ctrl+s")
	if m.Form.Active {
		t.Fatalf("expected form closed, err=%q", m.Form.Err)
	}
	var added model.Task
	for _, task := range m.State.Tasks {
		if task.Title == "Plan trip" {
			added = task
		}
	}
	if added.ID == "" {
		t.Fatal("expected new task in state")
	}
	if added.Description != "Pack light" || added.CategoryName() != "Work" {
		t.Fatalf("unexpected task: %+v", added)
	}
	if added.DueDate == nil || added.DueDate.In(time.Local).Format("2006-01-02") != "2026-04-01" {
		t.Fatalf("unexpected due date: %v", added.DueDate)
	}
	if len(added.Subtasks) != 2 || added.Subtasks[1].Title != "Rent car" {
		t.Fatalf("unexpected subtasks: %+v", added.Subtasks)
	}
}

func TestFormRejectsBadDueDate(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "a", "Plan trip", "tab", "tab", "next week", "ctrl+s")
	if !m.Form.Active || m.Form.Err != "Due date must be YYYY-MM-DD" {
		t.Fatalf("expected due date error, got %q", m.Form.Err)
	}
	if m.Form.Focus != FieldDue {
		t.Fatalf("expected focus on due field, got %s", m.Form.Focus)
	}
}

func TestFormCreatesNewCategory(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "a", "Hike", "tab", "tab", "tab", "left")
	if !m.newCategorySelected() {
		t.Fatalf("expected new category option, index=%d", m.Form.CategoryIndex)
	}
	m = press(t, m, "tab", "Outdoors", "tab", "right", "ctrl+s")
	if m.Form.Active {
		t.Fatalf("expected form closed, err=%q", m.Form.Err)
	}
	cat, ok := m.State.CategoryByName("outdoors")
	if !ok || cat.Color != model.Palette[1] || cat.ID == "" {
		t.Fatalf("expected Outdoors category with second palette color, got %+v ok=%v", cat, ok)
	}
	for _, task := range m.State.Tasks {
		if task.Title == "Hike" && task.CategoryName() != "Outdoors" {
			t.Fatalf("expected Hike in Outdoors, got %q", task.CategoryName())
		}
	}
}

func TestEditTaskKeepsSubtaskState(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "j", "j", "e")
	if m.Form.EditingID != "task-1" || m.Form.title.Value() != "Finalize Q3 report" {
		t.Fatalf("unexpected edit form: id=%q title=%q", m.Form.EditingID, m.Form.title.Value())
	}
	m = press(t, m, "!", "ctrl+s")
	task, _ := m.State.Task("task-1")
	if task.Title != "Finalize Q3 report!" {
		t.Fatalf("unexpected title: %q", task.Title)
	}
	if len(task.Subtasks) != 2 || task.Subtasks[0].ID != "sub-1-1" || !task.Subtasks[0].Completed {
		t.Fatalf("expected subtasks preserved, got %+v", task.Subtasks)
	}
	if task.CategoryName() != "Work" {
		t.Fatalf("expected category preserved, got %q", task.CategoryName())
	}
}

func TestSuggestionSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "a", "Run")
	updated, _ := m.Update(SuggestionsMsg{Result: suggest.Result{Seq: 1, Title: "Run", Categories: []string{"fitness", "work"}}})
	m = updated.(Model)
	if len(m.Form.Suggestions) != 2 {
		t.Fatalf("expected suggestions, got %v", m.Form.Suggestions)
	}

	m = press(t, m, "ctrl+n", "ctrl+y")
	if m.Form.CategoryIndex != 0 || m.Form.Suggestions != nil {
		t.Fatalf("expected existing Work selected and chips cleared, got index=%d", m.Form.CategoryIndex)
	}

	updated, _ = m.Update(SuggestionsMsg{Result: suggest.Result{Seq: 2, Title: "Run", Categories: []string{"Fitness"}}})
	m = press(t, updated.(Model), "ctrl+y")
	if !m.newCategorySelected() || m.Form.newName.Value() != "Fitness" || m.Form.NewColor != model.Palette[0] {
		t.Fatalf("expected staged new category, got index=%d name=%q color=%q", m.Form.CategoryIndex, m.Form.newName.Value(), m.Form.NewColor)
	}
	if m.Form.Focus != FieldNewName {
		t.Fatalf("expected focus on new name, got %s", m.Form.Focus)
	}
	if len(m.State.Categories) != 3 {
		t.Fatal("a staged category must not be added before saving")
	}
}

func TestSuggestionFailureShowsNothing(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "a")
	m.Form.Suggestions = []string{"old"}
	updated, _ := m.Update(SuggestionsMsg{Result: suggest.Result{Seq: 1, Err: suggest.ErrUnavailable}})
	m = updated.(Model)
	if m.Form.Suggestions != nil || m.Form.Suggesting {
		t.Fatalf("expected no suggestions after failure, got %v", m.Form.Suggestions)
	}
}

func TestSuggestionsForClosedFormAreDropped(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "a", "Buy milk", "esc", "a")
	if !m.Form.Active || m.Form.title.Value() != "" {
		t.Fatalf("expected a fresh empty form, got title %q", m.Form.title.Value())
	}
	updated, _ := m.Update(SuggestionsMsg{Result: suggest.Result{Seq: 1, Title: "Buy milk", Categories: []string{"Groceries"}}})
	m = updated.(Model)
	if m.Form.Suggestions != nil {
		t.Fatalf("expected result for the closed form to be ignored, got %v", m.Form.Suggestions)
	}

	m = press(t, m, "Read")
	updated, _ = m.Update(SuggestionsMsg{Result: suggest.Result{Seq: 2, Title: "Rea", Categories: []string{"Books"}}})
	m = updated.(Model)
	if m.Form.Suggestions != nil {
		t.Fatalf("expected result for an older title to be ignored, got %v", m.Form.Suggestions)
	}
}

func TestTypingTitleTriggersFetcher(t *testing.T) {
	calls := make(chan string, 4)
	fetcher := suggest.NewFetcher(suggest.SuggesterFunc(func(_ context.Context, title string) ([]string, error) {
		calls <- title
		return []string{"Health"}, nil
	}), suggest.FetcherOptions{Debounce: 200 * time.Millisecond})
	t.Cleanup(fetcher.Close)

	m := newTestModel(t, fetcher)
	if m.Init() == nil {
		t.Fatal("expected suggestion wait command from Init")
	}
	m = press(t, m, "a", "G", "o", " ", "r", "u", "n")
	if !m.Form.Suggesting {
		t.Fatal("expected suggesting state while typing")
	}

	select {
	case res := <-fetcher.Results():
		if res.Title != "Go run" {
			t.Fatalf("unexpected result title %q", res.Title)
		}
		updated, cmd := m.Update(SuggestionsMsg{Result: res})
		m = updated.(Model)
		if cmd == nil {
			t.Fatal("expected wait command to be re-armed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for suggestions")
	}
	if got := <-calls; got != "Go run" {
		t.Fatalf("expected one remote call with the final title, got %q", got)
	}
	if len(m.Form.Suggestions) != 1 || m.Form.Suggestions[0] != "Health" {
		t.Fatalf("unexpected suggestions: %v", m.Form.Suggestions)
	}
}

func TestPaletteCommands(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "/", "add Buy stamps cat:Errands", "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	if m.Status.IsError || !strings.Contains(m.Status.Text, "Buy stamps") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if _, ok := m.State.CategoryByName("Errands"); !ok {
		t.Fatal("expected Errands category created")
	}

	rows := rowIDs(m)
	m = press(t, m, "/", "done 1", "enter")
	task, _ := m.State.Task(rows[0])
	if !task.Completed || m.Toast == nil {
		t.Fatalf("expected row 1 completed with toast, got %+v", task)
	}

	m = press(t, m, "/", "delete 99", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected invalid argument status, got %+v", m.Status)
	}

	m = press(t, m, "/", "category Errands", "enter")
	if !m.Status.IsError {
		t.Fatal("expected duplicate category error")
	}

	m = press(t, m, "/", "show calendar", "enter")
	if m.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %s", m.CurrentView)
	}
}

func TestPaletteDeleteCategoryMovesTasksToNoCategory(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "/", "category delete shopping", "enter")
	if m.Status.IsError || !strings.Contains(m.Status.Text, "Shopping") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if _, ok := m.State.CategoryByName("Shopping"); ok {
		t.Fatal("expected Shopping category removed")
	}
	task, _ := m.State.Task("task-3")
	if task.Category != nil {
		t.Fatalf("expected task-3 category cleared, got %+v", task.Category)
	}
	if !strings.Contains(m.renderTasksView(), "No Category") {
		t.Fatal("expected a No Category group in the task list")
	}

	m = press(t, m, "/", "category delete Shopping", "enter")
	if !m.Status.IsError {
		t.Fatal("expected error deleting a missing category")
	}
}

func TestCalendarRanges(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2")
	if len(m.agenda()) != 0 {
		t.Fatalf("expected nothing due today, got %d", len(m.agenda()))
	}
	m = press(t, m, "l", "l")
	agenda := m.agenda()
	if len(agenda) != 1 || agenda[0].ID != "task-1" {
		t.Fatalf("expected task-1 due in two days, got %+v", agenda)
	}
	m = press(t, m, "w")
	if len(m.agenda()) != 2 {
		t.Fatalf("expected two tasks this week, got %d", len(m.agenda()))
	}
	m = press(t, m, "m")
	if len(m.agenda()) != 2 {
		t.Fatalf("expected two tasks this month, got %d", len(m.agenda()))
	}
	m = press(t, m, "L")
	if len(m.agenda()) != 0 || m.Calendar.Focus.Month() != time.April {
		t.Fatalf("expected empty April, focus=%v", m.Calendar.Focus)
	}
	m = press(t, m, "t")
	if !m.Calendar.Focus.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("expected focus back on today, got %v", m.Calendar.Focus)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.View()
	for _, want := range []string{"OrganizeMe", "Personal", "Shopping", "Work", "Finalize Q3 report"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
	m = press(t, m, "?")
	if !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help panel")
	}
	m = press(t, m, "2")
	if !strings.Contains(m.View(), "Mo Tu We Th Fr Sa Su") {
		t.Fatal("expected calendar grid")
	}
}
