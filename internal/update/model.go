package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/dayplan/internal/agenda"
	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/notify"
)

type View string

const (
	ViewAgenda View = "Agenda"
	ViewRules  View = "Rules"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Agenda  string
	Rules   string
	Help    string
	Refresh string
	Quit    string
}

// Backend is the slice of the store the TUI needs. *storage.Store satisfies it.
type Backend interface {
	LoadItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, item model.Item) error
	CompleteItem(ctx context.Context, id string) error
	Rules(ctx context.Context) ([]model.NotificationRule, error)
	QuietConfig(ctx context.Context) (model.QuietConfig, error)
	SetQuietEnabled(ctx context.Context, enabled bool) error
}

type AgendaState struct {
	View   agenda.View
	Cursor int
}

type RulesState struct {
	Rules  []model.NotificationRule
	Quiet  model.QuietConfig
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	SelectedItemID string
	Agenda         AgendaState
	Rules          RulesState
	Backend        Backend
	Engine         *notify.Engine
	Loc            *time.Location
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	// Bubble components used for rich TUI controls
	agendaList    list.Model
	commandInput  textinput.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
	detailView    viewport.Model
	spinnerActive bool
	now           func() time.Time
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
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

type AgendaLoadedMsg struct {
	View agenda.View
}

type RulesLoadedMsg struct {
	Rules []model.NotificationRule
	Quiet model.QuietConfig
}

type NotificationFiredMsg struct {
	Event notify.Event
}

type RefreshMsg struct{}

func NewModel() Model {
	m := Model{
		CurrentView: ViewAgenda,
		Loc:         time.UTC,
		notifier:    NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Agenda:  "1",
			Rules:   "2",
			Help:    "?",
			Refresh: "r",
			Quit:    "q",
		},
		now: time.Now,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithBackend(backend Backend, engine *notify.Engine, loc *time.Location) Model {
	m := NewModel()
	m.Backend = backend
	m.Engine = engine
	if loc != nil {
		m.Loc = loc
	}
	return m
}

func NewModelWithRuntime(backend Backend, engine *notify.Engine, loc *time.Location, desktopEnabled bool, notifier DesktopNotifier) Model {
	m := NewModelWithBackend(backend, engine, loc)
	m.DesktopEnabled = desktopEnabled
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.agendaList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.agendaList.Title = "Agenda (list)"
	m.agendaList.SetShowHelp(false)
	m.agendaList.SetFilteringEnabled(false)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailView = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Agenda.View.Today))
	for _, item := range m.Agenda.View.Today {
		desc := string(item.Priority)
		if item.StartTime != "" {
			desc += " @" + item.StartTime
		}
		items = append(items, listItem{title: item.Title, description: desc})
	}
	m.agendaList.SetItems(items)
	if len(items) > 0 && m.Agenda.Cursor < len(items) {
		m.agendaList.Select(m.Agenda.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if sel, ok := m.currentAgendaItem(); ok {
		m.detailView.SetContent(renderItemDetail(sel))
	}
}
