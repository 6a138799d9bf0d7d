package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/organizeme/internal/commands"
	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/views"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

// visibleRows are the tasks a row-number target refers to: the grouped list
// in the tasks view, the agenda in the calendar view.
func (m Model) visibleRows() []model.Task {
	if m.CurrentView == ViewCalendar {
		return m.agenda()
	}
	return m.taskRows()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			var category *model.Category
			if a.Category != "" {
				cat, created := model.ResolveCategory(m.categories(), a.Category, model.DefaultColor())
				if created {
					if err := m.store.AddCategory(m.ctx, cat); err != nil {
						return commands.Result{}, err
					}
				}
				category = &cat
			}
			t := model.NewTask(a.Title, "", a.Due, category, nil)
			if err := m.store.AddTask(m.ctx, t); err != nil {
				return commands.Result{}, err
			}
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("added: %s", t.Title)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := commands.ResolveTarget(a.Target, m.visibleRows())
			if err != nil {
				return commands.Result{}, err
			}
			m, follow = m.toggleCompleted(t.ID)
			if t.Completed {
				return commands.Result{Message: fmt.Sprintf("reopened: %s", t.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("completed: %s", t.Title)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := commands.ResolveTarget(a.Target, m.visibleRows())
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.store.DeleteTask(m.ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", t.Title)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			existing, ok := m.State.CategoryByName(a.Name)
			if a.Delete {
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no category named %q", a.Name)}
				}
				if err := m.store.DeleteCategory(m.ctx, existing.ID); err != nil {
					return commands.Result{}, err
				}
				m.refresh()
				return commands.Result{Message: fmt.Sprintf("category deleted: %s", existing.Name)}, nil
			}
			if ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("category %q already exists", a.Name)}
			}
			color := a.Color
			if color == "" {
				color = model.DefaultColor()
			}
			if err := m.store.AddCategory(m.ctx, model.NewCategory(a.Name, color)); err != nil {
				return commands.Result{}, err
			}
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("category added: %s", a.Name)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			if a.View == commands.ViewCalendar {
				m.CurrentView = ViewCalendar
			} else {
				m.CurrentView = ViewTasks
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", a.View)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.WithError(err).WithField("command", raw).Debug("command failed")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.Value())
}
