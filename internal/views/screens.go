package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Row           int
	ID            string
	Title         string
	Completed     bool
	Due           string
	SubtasksDone  int
	SubtasksTotal int
	Selected      bool
}

type GroupData struct {
	Name  string
	Color string
	Rows  []TaskRowData
}

type TasksPanelData struct {
	Groups []GroupData
}

type SubtaskData struct {
	Title     string
	Completed bool
	Selected  bool
}

type TaskDetailData struct {
	Title       string
	Category    string
	Color       string
	Due         string
	Completed   bool
	Description string
	Subtasks    []SubtaskData
}

type CalendarDayData struct {
	Day      int
	HasTasks bool
	Selected bool
	Today    bool
}

type CalendarPanelData struct {
	Mode       string
	MonthLabel string
	Leading    int
	Days       []CalendarDayData
	RangeLabel string
	Agenda     []TaskRowData
}

type FormData struct {
	Heading       string
	Focused       string
	TitleView     string
	DescView      string
	DueView       string
	Category      string
	NewCategory   bool
	NewNameView   string
	NewColor      string
	SubtasksView  string
	Suggestions   []string
	SuggestCursor int
	Suggesting    bool
	SpinnerView   string
	Error         string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type ToastData struct {
	Title string
	Body  string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString("actions: [a]add [e]edit [space]done [x]subtask [d]delete\n")
	if len(data.Groups) == 0 {
		b.WriteString("\nNo tasks yet. Press [a] to add one.")
		return b.String()
	}
	for _, g := range data.Groups {
		b.WriteString(fmt.Sprintf("\n%s %s (%d)\n", Swatch(g.Color), g.Name, len(g.Rows)))
		for _, row := range g.Rows {
			b.WriteString(renderTaskRow(row) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	title := row.Title
	if row.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	} else if row.Selected {
		title = cursorStyle.Render(title)
	}
	line := fmt.Sprintf("%s %2d %s %s", cursor, row.Row, check, title)
	var meta []string
	if row.Due != "" {
		meta = append(meta, "due "+row.Due)
	}
	if row.SubtasksTotal > 0 {
		meta = append(meta, fmt.Sprintf("%d/%d", row.SubtasksDone, row.SubtasksTotal))
	}
	if len(meta) > 0 {
		line += " " + mutedStyle.Render(strings.Join(meta, " | "))
	}
	return line
}

func RenderTaskDetail(data *TaskDetailData) string {
	if data == nil {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(data.Title + "\n")
	if data.Category != "" {
		b.WriteString(fmt.Sprintf("category: %s %s\n", Swatch(data.Color), data.Category))
	}
	if data.Due != "" {
		b.WriteString("due: " + data.Due + "\n")
	}
	if data.Completed {
		b.WriteString("status: completed\n")
	}
	if md := RenderMarkdown(data.Description); md != "" {
		b.WriteString("\n" + md + "\n")
	}
	if len(data.Subtasks) > 0 {
		b.WriteString("\nsubtasks:\n")
		for _, st := range data.Subtasks {
			cursor := " "
			if st.Selected {
				cursor = ">"
			}
			check := "[ ]"
			title := st.Title
			if st.Completed {
				check = "[x]"
				title = doneStyle.Render(title)
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, check, title))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("mode: %s | %s\n", data.Mode, data.MonthLabel))
	b.WriteString("actions: [d]day [w]week [m]month [h/l]day [H/L]period [t]today\n\n")
	b.WriteString("Mo Tu We Th Fr Sa Su\n")
	col := 0
	for i := 0; i < data.Leading; i++ {
		b.WriteString("   ")
		col++
	}
	for _, d := range data.Days {
		cell := fmt.Sprintf("%2d", d.Day)
		switch {
		case d.Selected:
			cell = cursorStyle.Reverse(true).Render(cell)
		case d.HasTasks:
			cell = cursorStyle.Underline(true).Render(cell)
		case d.Today:
			cell = statusStyle.Render(cell)
		}
		b.WriteString(cell)
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n\n" + data.RangeLabel + ":\n")
	if len(data.Agenda) == 0 {
		b.WriteString("No tasks due.")
		return b.String()
	}
	for _, row := range data.Agenda {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Heading + ":\n")
	b.WriteString("keys: [tab]next field [ctrl+s]save [esc]cancel\n\n")
	field := func(name, label, view string) {
		marker := " "
		if data.Focused == name {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n", marker, label, view))
	}
	field("title", "title", data.TitleView)
	switch {
	case data.Suggesting:
		b.WriteString("  " + data.SpinnerView + " suggesting categories...\n")
	case len(data.Suggestions) > 0:
		chips := make([]string, 0, len(data.Suggestions))
		for i, s := range data.Suggestions {
			if i == data.SuggestCursor {
				chips = append(chips, cursorStyle.Reverse(true).Render(" "+s+" "))
			} else {
				chips = append(chips, "["+s+"]")
			}
		}
		b.WriteString("  suggestions: " + strings.Join(chips, " ") + "  [ctrl+n]next [ctrl+y]use\n")
	}
	field("description", "description (markdown)", data.DescView)
	field("due", "due date (YYYY-MM-DD)", data.DueView)
	field("category", "category [left/right]", data.Category)
	if data.NewCategory {
		field("new_name", "new category name", data.NewNameView)
		field("new_color", "new category color [left/right]", Swatch(data.NewColor)+" "+data.NewColor)
	}
	field("subtasks", "subtasks (one per line)", data.SubtasksView)
	if data.Error != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+data.Error))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderToast(data *ToastData) string {
	if data == nil {
		return ""
	}
	return fmt.Sprintf("%s\n%s", cursorStyle.Render(data.Title), data.Body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
