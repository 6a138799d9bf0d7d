package update

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/suggest"
	"github.com/sandeepkv93/organizeme/internal/views"
)

const dueLayout = "2006-01-02"

func newFormState() FormState {
	f := FormState{
		Focus:         FieldTitle,
		CategoryIndex: -1,
		NewColor:      model.DefaultColor(),
	}
	f.title = textinput.New()
	f.title.Placeholder = "Task title"
	f.title.Width = 48

	f.description = textarea.New()
	f.description.Placeholder = "Optional description (markdown)"
	f.description.ShowLineNumbers = false
	f.description.SetWidth(52)
	f.description.SetHeight(4)

	f.due = textinput.New()
	f.due.Placeholder = dueLayout
	f.due.CharLimit = len(dueLayout)
	f.due.Width = 12

	f.newName = textinput.New()
	f.newName.Placeholder = "Category name"
	f.newName.CharLimit = 64
	f.newName.Width = 32

	f.subtasks = textarea.New()
	f.subtasks.Placeholder = "One subtask per line"
	f.subtasks.ShowLineNumbers = false
	f.subtasks.SetWidth(52)
	f.subtasks.SetHeight(4)
	return f
}

func (m Model) openAddForm() (Model, tea.Cmd) {
	m.Form = newFormState()
	m.Form.Active = true
	return m, m.focusFormField(FieldTitle)
}

func (m Model) openEditForm(t model.Task) (Model, tea.Cmd) {
	m.Form = newFormState()
	m.Form.Active = true
	m.Form.EditingID = t.ID
	m.Form.title.SetValue(t.Title)
	m.Form.lastTitle = t.Title
	m.Form.description.SetValue(t.Description)
	if t.HasDueDate() {
		m.Form.due.SetValue(t.DueDate.In(time.Local).Format(dueLayout))
	}
	if t.Category != nil {
		for i, c := range m.categories() {
			if c.ID == t.Category.ID {
				m.Form.CategoryIndex = i
				break
			}
		}
	}
	lines := make([]string, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		lines = append(lines, st.Title)
	}
	m.Form.subtasks.SetValue(strings.Join(lines, "\n"))
	return m, m.focusFormField(FieldTitle)
}

func (m *Model) closeForm() {
	m.Form = newFormState()
}

func (m Model) formFields() []FormField {
	fields := []FormField{FieldTitle, FieldDescription, FieldDue, FieldCategory}
	if m.newCategorySelected() {
		fields = append(fields, FieldNewName, FieldNewColor)
	}
	return append(fields, FieldSubtasks)
}

func (m Model) newCategorySelected() bool {
	return m.Form.CategoryIndex == len(m.categories())
}

func (m *Model) focusFormField(field FormField) tea.Cmd {
	m.Form.Focus = field
	m.Form.title.Blur()
	m.Form.description.Blur()
	m.Form.due.Blur()
	m.Form.newName.Blur()
	m.Form.subtasks.Blur()
	switch field {
	case FieldTitle:
		return m.Form.title.Focus()
	case FieldDescription:
		return m.Form.description.Focus()
	case FieldDue:
		return m.Form.due.Focus()
	case FieldNewName:
		return m.Form.newName.Focus()
	case FieldSubtasks:
		return m.Form.subtasks.Focus()
	}
	return nil
}

func (m *Model) moveFormFocus(delta int) tea.Cmd {
	fields := m.formFields()
	idx := 0
	for i, f := range fields {
		if f == m.Form.Focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	return m.focusFormField(fields[idx])
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "tab":
		return m, m.moveFormFocus(1)
	case "shift+tab":
		return m, m.moveFormFocus(-1)
	case "ctrl+n":
		if n := len(m.Form.Suggestions); n > 0 {
			m.Form.SuggestCursor = (m.Form.SuggestCursor + 1) % n
		}
		return m, nil
	case "ctrl+y":
		return m.applySuggestion()
	}

	switch m.Form.Focus {
	case FieldCategory:
		switch msg.String() {
		case "left", "h":
			m.cycleCategory(-1)
		case "right", "l", " ":
			m.cycleCategory(1)
		case "enter":
			return m, m.moveFormFocus(1)
		}
		return m, nil
	case FieldNewColor:
		switch msg.String() {
		case "left", "h":
			m.Form.NewColor = model.NextColor(m.Form.NewColor, -1)
		case "right", "l", " ":
			m.Form.NewColor = model.NextColor(m.Form.NewColor, 1)
		case "enter":
			return m, m.moveFormFocus(1)
		}
		return m, nil
	}

	if msg.String() == "enter" {
		switch m.Form.Focus {
		case FieldTitle, FieldDue, FieldNewName:
			return m, m.moveFormFocus(1)
		}
	}

	var cmd tea.Cmd
	switch m.Form.Focus {
	case FieldTitle:
		m.Form.title, cmd = m.Form.title.Update(msg)
		if m.onTitleChanged() {
			cmd = tea.Batch(cmd, m.spinner.Tick)
		}
	case FieldDescription:
		m.Form.description, cmd = m.Form.description.Update(msg)
	case FieldDue:
		m.Form.due, cmd = m.Form.due.Update(msg)
	case FieldNewName:
		m.Form.newName, cmd = m.Form.newName.Update(msg)
	case FieldSubtasks:
		m.Form.subtasks, cmd = m.Form.subtasks.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleCategory(delta int) {
	// options run from -1 (none) to len(categories) (new)
	n := len(m.categories()) + 2
	idx := m.Form.CategoryIndex + 1
	idx = ((idx+delta)%n + n) % n
	m.Form.CategoryIndex = idx - 1
}

// onTitleChanged feeds a changed, non-blank title to the suggestion fetcher.
// It reports whether a lookup is now pending.
func (m *Model) onTitleChanged() bool {
	value := m.Form.title.Value()
	if value == m.Form.lastTitle {
		return false
	}
	m.Form.lastTitle = value
	if m.fetcher == nil || strings.TrimSpace(value) == "" {
		return false
	}
	wasSuggesting := m.Form.Suggesting
	m.Form.Suggesting = utf8.RuneCountInString(value) >= suggest.MinTitleLength
	m.fetcher.Trigger(value)
	return m.Form.Suggesting && !wasSuggesting
}

// onSuggestions applies a lookup result to the open form. Results for a
// title other than the one currently typed belong to an earlier form or an
// earlier edit and are dropped.
func (m Model) onSuggestions(res suggest.Result) Model {
	if !m.Form.Active || res.Title != m.Form.title.Value() {
		return m
	}
	m.Form.Suggesting = false
	m.Form.SuggestCursor = 0
	if res.Err != nil {
		m.logger.WithError(res.Err).WithField("title", res.Title).Debug("category suggestions unavailable")
		m.Form.Suggestions = nil
		return m
	}
	m.Form.Suggestions = res.Categories
	return m
}

// applySuggestion selects the highlighted chip: an existing category is
// picked directly, anything else pre-fills a new category.
func (m Model) applySuggestion() (Model, tea.Cmd) {
	if len(m.Form.Suggestions) == 0 {
		return m, nil
	}
	choice := m.Form.Suggestions[m.Form.SuggestCursor]
	sel := suggest.Resolve(m.categories(), choice)
	m.Form.Suggestions = nil
	m.Form.SuggestCursor = 0
	if sel.Existing {
		for i, c := range m.categories() {
			if c.ID == sel.Category.ID {
				m.Form.CategoryIndex = i
			}
		}
		return m, nil
	}
	m.Form.CategoryIndex = len(m.categories())
	m.Form.newName.SetValue(sel.Category.Name)
	m.Form.NewColor = sel.Category.Color
	return m, m.focusFormField(FieldNewName)
}

func (m Model) submitForm() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.Form.title.Value())
	if title == "" {
		m.Form.Err = "Title is required"
		return m, m.focusFormField(FieldTitle)
	}

	var due *time.Time
	if raw := strings.TrimSpace(m.Form.due.Value()); raw != "" {
		parsed, err := time.ParseInLocation(dueLayout, raw, time.Local)
		if err != nil {
			m.Form.Err = "Due date must be YYYY-MM-DD"
			return m, m.focusFormField(FieldDue)
		}
		due = &parsed
	}

	var subtasks []string
	for _, line := range strings.Split(m.Form.subtasks.Value(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			subtasks = append(subtasks, line)
		}
	}

	var category *model.Category
	cats := m.categories()
	switch {
	case m.newCategorySelected():
		name := strings.TrimSpace(m.Form.newName.Value())
		if name != "" {
			cat, created := model.ResolveCategory(cats, name, m.Form.NewColor)
			if created {
				if err := m.store.AddCategory(m.ctx, cat); err != nil {
					return m.fail(err), nil
				}
			}
			category = &cat
		}
	case m.Form.CategoryIndex >= 0 && m.Form.CategoryIndex < len(cats):
		cat := cats[m.Form.CategoryIndex]
		category = &cat
	}

	if m.Form.EditingID != "" {
		existing, ok := m.State.Task(m.Form.EditingID)
		if !ok {
			m.closeForm()
			m.refresh()
			return m.fail(fmt.Errorf("task %s no longer exists", m.Form.EditingID)), nil
		}
		if err := m.store.UpdateTask(m.ctx, existing.Edit(title, m.Form.description.Value(), due, category, subtasks)); err != nil {
			return m.fail(err), nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", title)}
	} else {
		t := model.NewTask(title, m.Form.description.Value(), due, category, subtasks)
		if err := m.store.AddTask(m.ctx, t); err != nil {
			return m.fail(err), nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", title)}
	}
	m.closeForm()
	m.refresh()
	return m, nil
}

func (m Model) renderForm() string {
	heading := "add task"
	if m.Form.EditingID != "" {
		heading = "edit task"
	}
	category := "(none)"
	cats := m.categories()
	switch {
	case m.newCategorySelected():
		category = "+ create new category"
	case m.Form.CategoryIndex >= 0 && m.Form.CategoryIndex < len(cats):
		c := cats[m.Form.CategoryIndex]
		category = views.Swatch(c.Color) + " " + c.Name
	}
	return views.RenderForm(views.FormData{
		Heading:       heading,
		Focused:       string(m.Form.Focus),
		TitleView:     m.Form.title.View(),
		DescView:      m.Form.description.View(),
		DueView:       m.Form.due.View(),
		Category:      category,
		NewCategory:   m.newCategorySelected(),
		NewNameView:   m.Form.newName.View(),
		NewColor:      m.Form.NewColor,
		SubtasksView:  m.Form.subtasks.View(),
		Suggestions:   m.Form.Suggestions,
		SuggestCursor: m.Form.SuggestCursor,
		Suggesting:    m.Form.Suggesting,
		SpinnerView:   m.spinner.View(),
		Error:         m.Form.Err,
	})
}
