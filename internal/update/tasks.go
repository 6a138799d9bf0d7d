package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/organizeme/internal/board"
	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.taskRows()
	switch msg.String() {
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
			m.Tasks.SubtaskCursor = 0
		}
	case "down", "j":
		if m.Tasks.Cursor < len(rows)-1 {
			m.Tasks.Cursor++
			m.Tasks.SubtaskCursor = 0
		}
	case "]":
		if t, ok := m.selectedTask(); ok && m.Tasks.SubtaskCursor < len(t.Subtasks)-1 {
			m.Tasks.SubtaskCursor++
		}
	case "[":
		if m.Tasks.SubtaskCursor > 0 {
			m.Tasks.SubtaskCursor--
		}
	case " ":
		if t, ok := m.selectedTask(); ok {
			return m.toggleCompleted(t.ID)
		}
	case "x":
		if t, ok := m.selectedTask(); ok && m.Tasks.SubtaskCursor < len(t.Subtasks) {
			st := t.Subtasks[m.Tasks.SubtaskCursor]
			if err := m.store.ToggleSubtaskCompleted(m.ctx, t.ID, st.ID); err != nil {
				return m.fail(err), nil
			}
			m.refresh()
		}
	case "a":
		return m.openAddForm()
	case "e", "enter":
		if t, ok := m.selectedTask(); ok {
			return m.openEditForm(t)
		}
	case "d":
		if t, ok := m.selectedTask(); ok {
			return m.deleteTask(t.ID)
		}
	}
	return m, nil
}

// toggleCompleted flips a task's completion and celebrates when it becomes
// complete.
func (m Model) toggleCompleted(id string) (Model, tea.Cmd) {
	before, ok := m.State.Task(id)
	if !ok {
		return m, nil
	}
	if err := m.store.ToggleTaskCompleted(m.ctx, id); err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	if before.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", before.Title)}
		return m, nil
	}
	return m.showToast(
		motivationalMessages[m.pick(len(motivationalMessages))],
		fmt.Sprintf("You've completed: %q", before.Title),
	)
}

func (m Model) deleteTask(id string) (Model, tea.Cmd) {
	t, ok := m.State.Task(id)
	if !ok {
		return m, nil
	}
	if err := m.store.DeleteTask(m.ctx, id); err != nil {
		return m.fail(err), nil
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", t.Title)}
	return m, nil
}

func (m Model) showToast(title, body string) (Model, tea.Cmd) {
	m.toastSeq++
	seq := m.toastSeq
	m.Toast = &Toast{Title: title, Body: body, seq: seq}
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return ClearToastMsg{seq: seq} })
}

func (m Model) renderTasksView() string {
	groups := board.GroupTasks(m.State.Tasks)
	data := views.TasksPanelData{Groups: make([]views.GroupData, 0, len(groups))}
	row := 0
	for _, g := range groups {
		gd := views.GroupData{Name: g.Name, Color: g.Color}
		for _, t := range g.Tasks {
			row++
			gd.Rows = append(gd.Rows, m.taskRowData(row, t.ID, m.Tasks.Cursor == row-1))
		}
		data.Groups = append(data.Groups, gd)
	}
	return views.RenderTasksPanel(data)
}

func (m Model) taskRowData(row int, id string, selected bool) views.TaskRowData {
	t, _ := m.State.Task(id)
	data := views.TaskRowData{
		Row:           row,
		ID:            t.ID,
		Title:         t.Title,
		Completed:     t.Completed,
		SubtasksDone:  t.CompletedSubtasks(),
		SubtasksTotal: len(t.Subtasks),
		Selected:      selected,
	}
	if t.HasDueDate() {
		data.Due = t.DueDate.In(time.Local).Format("Jan 2, 2006")
	}
	return data
}

func (m Model) renderTaskDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(nil)
	}
	return views.RenderTaskDetail(taskDetailData(t, m.Tasks.SubtaskCursor))
}

// taskDetailData marks the subtask at cursor as selected; pass -1 for none.
func taskDetailData(t model.Task, cursor int) *views.TaskDetailData {
	data := &views.TaskDetailData{
		Title:       t.Title,
		Completed:   t.Completed,
		Description: t.Description,
	}
	if t.Category != nil {
		data.Category = t.Category.Name
		data.Color = t.Category.Color
	}
	if t.HasDueDate() {
		data.Due = t.DueDate.In(time.Local).Format("Monday, January 2, 2006")
	}
	for i, st := range t.Subtasks {
		data.Subtasks = append(data.Subtasks, views.SubtaskData{
			Title:     st.Title,
			Completed: st.Completed,
			Selected:  i == cursor,
		})
	}
	return data
}
