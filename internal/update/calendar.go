package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/organizeme/internal/board"
	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "d":
		m.setCalendarMode(board.CalendarModeDay)
	case "w":
		m.setCalendarMode(board.CalendarModeWeek)
	case "m":
		m.setCalendarMode(board.CalendarModeMonth)
	case "h", "left":
		m.moveCalendarFocus(m.Calendar.Focus.AddDate(0, 0, -1))
	case "l", "right":
		m.moveCalendarFocus(m.Calendar.Focus.AddDate(0, 0, 1))
	case "H":
		m.moveCalendarFocus(board.Shift(m.Calendar.Mode, m.Calendar.Focus, -1))
	case "L":
		m.moveCalendarFocus(board.Shift(m.Calendar.Mode, m.Calendar.Focus, 1))
	case "t":
		m.moveCalendarFocus(board.StartOfDay(m.now(), time.Local))
	case "up", "k":
		if m.Calendar.Cursor > 0 {
			m.Calendar.Cursor--
		}
	case "down", "j":
		if m.Calendar.Cursor < len(m.agenda())-1 {
			m.Calendar.Cursor++
		}
	case " ":
		if t, ok := m.selectedAgendaTask(); ok {
			return m.toggleCompleted(t.ID)
		}
	case "e", "enter":
		if t, ok := m.selectedAgendaTask(); ok {
			return m.openEditForm(t)
		}
	}
	return m, nil
}

func (m *Model) setCalendarMode(mode board.CalendarMode) {
	m.Calendar.Mode = mode
	m.Calendar.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("calendar mode: %s", mode)}
}

func (m *Model) moveCalendarFocus(focus time.Time) {
	m.Calendar.Focus = board.StartOfDay(focus, time.Local)
	m.Calendar.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("calendar focus: %s", m.Calendar.Focus.Format(dueLayout))}
}

// agenda lists the tasks due inside the calendar window around the focused
// day.
func (m Model) agenda() []model.Task {
	if m.State == nil {
		return nil
	}
	if m.Calendar.Mode == board.CalendarModeDay {
		return board.TasksOn(m.State.Tasks, m.Calendar.Focus, time.Local)
	}
	from, to := board.Window(m.Calendar.Mode, m.Calendar.Focus, time.Local)
	return board.TasksBetween(m.State.Tasks, from, to)
}

func (m Model) selectedAgendaTask() (model.Task, bool) {
	items := m.agenda()
	if m.Calendar.Cursor < 0 || m.Calendar.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.Calendar.Cursor], true
}

func (m Model) renderCalendarView() string {
	focus := m.Calendar.Focus
	first := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, time.Local)
	marked := make(map[time.Time]bool)
	for _, d := range board.DaysWithTasks(m.State.Tasks, time.Local) {
		marked[d] = true
	}
	today := board.StartOfDay(m.now(), time.Local)

	data := views.CalendarPanelData{
		Mode:       string(m.Calendar.Mode),
		MonthLabel: focus.Format("January 2006"),
		Leading:    (int(first.Weekday()) + 6) % 7,
		RangeLabel: m.rangeLabel(),
	}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		data.Days = append(data.Days, views.CalendarDayData{
			Day:      d.Day(),
			HasTasks: marked[d],
			Selected: d.Equal(focus),
			Today:    d.Equal(today),
		})
	}
	for i, t := range m.agenda() {
		data.Agenda = append(data.Agenda, m.taskRowData(i+1, t.ID, i == m.Calendar.Cursor))
	}
	return views.RenderCalendarPanel(data)
}

func (m Model) rangeLabel() string {
	from, to := board.Window(m.Calendar.Mode, m.Calendar.Focus, time.Local)
	switch m.Calendar.Mode {
	case board.CalendarModeDay:
		return from.Format("January 2, 2006")
	case board.CalendarModeMonth:
		return from.Format("January 2006")
	default:
		return fmt.Sprintf("%s - %s", from.Format("Jan 2"), to.AddDate(0, 0, -1).Format("Jan 2, 2006"))
	}
}

func (m Model) renderAgendaDetail() string {
	t, ok := m.selectedAgendaTask()
	if !ok {
		return views.RenderTaskDetail(nil)
	}
	return views.RenderTaskDetail(taskDetailData(t, -1))
}
