package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/today/internal/app"
	"github.com/sandeepkv93/today/internal/notify"
	"github.com/sandeepkv93/today/internal/scheduler"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add     string
	Toggle  string
	Refresh string
	Widget  string
	Help    string
	Quit    string
}

type AddField int

const (
	FieldTitle AddField = iota
	FieldTime
)

type AddFormState struct {
	Active bool
	Field  AddField
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Options struct {
	Engine          *scheduler.Engine
	Notifier        notify.DesktopNotifier
	DesktopEnabled  bool
	RefreshInterval time.Duration
}

type Model struct {
	Tasks          *app.TaskList
	Cursor         int
	Form           AddFormState
	Palette        CommandPaletteState
	HelpVisible    bool
	WidgetVisible  bool
	Scheduler      *scheduler.Engine
	ReminderLog    []scheduler.ReminderEvent
	Notifications  []Notification
	DesktopEnabled bool
	notifier       notify.DesktopNotifier
	refreshEvery   time.Duration
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx          context.Context
	titleInput   textinput.Model
	timeInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// RefreshTickMsg drives the periodic expiry sweep while the list is open.
type RefreshTickMsg struct {
	At time.Time
}

const defaultRefreshInterval = time.Minute

func NewModel(ctx context.Context, tasks *app.TaskList, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		Tasks:          tasks,
		Scheduler:      opts.Engine,
		DesktopEnabled: opts.DesktopEnabled,
		notifier:       opts.Notifier,
		refreshEvery:   opts.RefreshInterval,
		Keys: GlobalKeyMap{
			Add:     "a",
			Toggle:  "enter",
			Refresh: "r",
			Widget:  "w",
			Help:    "?",
			Quit:    "q",
		},
		ctx: ctx,
	}
	if m.notifier == nil {
		m.notifier = notify.NoopDesktopNotifier{}
	}
	if m.refreshEvery <= 0 {
		m.refreshEvery = defaultRefreshInterval
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.Placeholder = "What needs doing today?"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.timeInput = textinput.New()
	m.timeInput.Prompt = ""
	m.timeInput.Placeholder = "HH:MM"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 6

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}
