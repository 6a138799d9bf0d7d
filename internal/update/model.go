package update

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/organizeme/internal/board"
	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/store"
	"github.com/sandeepkv93/organizeme/internal/suggest"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewCalendar View = "Calendar"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Calendar string
	Help     string
	Quit     string
}

var motivationalMessages = []string{
	"Great job!",
	"Task complete!",
	"One step closer!",
	"You're on a roll!",
	"Nicely done!",
	"Keep it up!",
}

const toastDuration = 3 * time.Second

type Model struct {
	CurrentView View
	State       *store.State
	Tasks       TasksState
	Calendar    CalendarState
	Form        FormState
	Palette     CommandPaletteState
	Toast       *Toast
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	ctx       context.Context
	store     *store.Store
	fetcher   *suggest.Fetcher
	logger    *log.Logger
	now       func() time.Time
	pick      func(n int) int
	toastSeq  int
	helpModel help.Model
	spinner   spinner.Model
	// command palette input
	commandInput textinput.Model
}

type TasksState struct {
	Cursor        int
	SubtaskCursor int
}

type CalendarState struct {
	Mode   board.CalendarMode
	Focus  time.Time
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Toast struct {
	Title string
	Body  string
	seq   int
}

type FormField string

const (
	FieldTitle       FormField = "title"
	FieldDescription FormField = "description"
	FieldDue         FormField = "due"
	FieldCategory    FormField = "category"
	FieldNewName     FormField = "new_name"
	FieldNewColor    FormField = "new_color"
	FieldSubtasks    FormField = "subtasks"
)

type FormState struct {
	Active    bool
	EditingID string
	Focus     FormField
	// CategoryIndex is -1 for no category, an index into the store's
	// categories, or len(categories) for a new one.
	CategoryIndex int
	NewColor      string
	Suggestions   []string
	SuggestCursor int
	Suggesting    bool
	Err           string

	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	newName     textinput.Model
	subtasks    textarea.Model
	lastTitle   string
}

type Options struct {
	Fetcher *suggest.Fetcher
	Logger  *log.Logger
	Now     func() time.Time
	// Pick chooses a motivational message index; defaults to math/rand.
	Pick func(n int) int
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SuggestionsMsg struct {
	Result suggest.Result
}

type ClearToastMsg struct {
	seq int
}

func NewModel(ctx context.Context, st *store.Store, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		CurrentView: ViewTasks,
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Calendar: "2",
			Help:     "?",
			Quit:     "q",
		},
		ctx:     ctx,
		store:   st,
		fetcher: opts.Fetcher,
		logger:  opts.Logger,
		now:     opts.Now,
		pick:    opts.Pick,
	}
	if m.logger == nil {
		m.logger = log.StandardLogger()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.pick == nil {
		m.pick = rand.IntN
	}
	m.Calendar = CalendarState{Mode: board.CalendarModeDay, Focus: board.StartOfDay(m.now(), time.Local)}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.Form = newFormState()
}

// refresh pulls the latest state from the store and clamps cursors to it.
func (m *Model) refresh() {
	if m.store != nil {
		m.State = m.store.State()
	}
	if m.State == nil {
		m.State = &store.State{}
	}
	rows := m.taskRows()
	if m.Tasks.Cursor >= len(rows) {
		m.Tasks.Cursor = len(rows) - 1
	}
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
	if t, ok := m.selectedTask(); ok {
		if m.Tasks.SubtaskCursor >= len(t.Subtasks) {
			m.Tasks.SubtaskCursor = len(t.Subtasks) - 1
		}
	}
	if m.Tasks.SubtaskCursor < 0 {
		m.Tasks.SubtaskCursor = 0
	}
	agenda := m.agenda()
	if m.Calendar.Cursor >= len(agenda) {
		m.Calendar.Cursor = len(agenda) - 1
	}
	if m.Calendar.Cursor < 0 {
		m.Calendar.Cursor = 0
	}
}

// taskRows is the task list in display order; row numbers shown on screen and
// accepted by commands index into it.
func (m Model) taskRows() []model.Task {
	if m.State == nil {
		return nil
	}
	var out []model.Task
	for _, g := range board.GroupTasks(m.State.Tasks) {
		out = append(out, g.Tasks...)
	}
	return out
}

func (m Model) selectedTask() (model.Task, bool) {
	rows := m.taskRows()
	if m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(rows) {
		return model.Task{}, false
	}
	return rows[m.Tasks.Cursor], true
}

func (m Model) categories() []model.Category {
	if m.State == nil {
		return nil
	}
	return m.State.Categories
}
