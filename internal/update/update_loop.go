package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/organizeme/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForSuggestionsCmd(m.fetcher)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/", ":":
			m.openPalette()
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewCalendar:
			return m.handleCalendarKey(typed)
		}
	case spinner.TickMsg:
		if m.Form.Suggesting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
	case SuggestionsMsg:
		m = m.onSuggestions(typed.Result)
		return m, waitForSuggestionsCmd(m.fetcher)
	case ClearToastMsg:
		if m.Toast != nil && m.Toast.seq == typed.seq {
			m.Toast = nil
		}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetail()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderAgendaDetail()
	}
	switch {
	case m.Form.Active:
		rightPane = m.renderForm()
	case m.HelpVisible:
		rightPane = m.renderHelpView()
	}
	if p := m.renderCommandPalette(); p != "" {
		rightPane = p + "\n\n" + rightPane
	}

	toast := ""
	if m.Toast != nil {
		toast = views.RenderToast(&views.ToastData{Title: m.Toast.Title, Body: m.Toast.Body})
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("OrganizeMe | %s | %d tasks", m.CurrentView, len(m.State.Tasks)),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: toast,
		Footer:       fmt.Sprintf("keys: %s tasks | %s calendar | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Calendar, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewCalendar:
		return true
	default:
		return false
	}
}
