package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	if cmd := m.loadAgendaCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.loadRulesCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.Engine != nil {
		cmds = append(cmds, waitForEventCmd(m.Engine.C()))
	}
	if m.Backend != nil {
		cmds = append(cmds, minuteTickCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Agenda:
			m.CurrentView = ViewAgenda
			return m, nil
		case m.Keys.Rules:
			m.CurrentView = ViewRules
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Refresh:
			if !m.spinnerActive && m.Backend != nil {
				m.spinnerActive = true
				m.Status = StatusBar{Text: "refreshing", IsError: false}
				return m, tea.Batch(m.syncSpinner.Tick, m.loadAgendaCmd(), m.loadRulesCmd())
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewAgenda {
			return m.handleAgendaKey(typed)
		}
		if m.CurrentView == ViewRules {
			return m.handleRulesKey(typed)
		}
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		m.spinnerActive = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AgendaLoadedMsg:
		m.Agenda.View = typed.View
		if m.Agenda.Cursor >= len(typed.View.Today) {
			m.Agenda.Cursor = 0
		}
		m.spinnerActive = false
		m.syncSelectedItemToCursor()
		return m, nil
	case RulesLoadedMsg:
		m.Rules.Rules = typed.Rules
		m.Rules.Quiet = typed.Quiet
		if m.Rules.Cursor >= len(typed.Rules) {
			m.Rules.Cursor = 0
		}
		m.spinnerActive = false
		return m, nil
	case NotificationFiredMsg:
		body := typed.Event.Message
		if body == "" {
			body = typed.Event.RuleID
		}
		m.Status = StatusBar{Text: fmt.Sprintf("notification: %s", body), IsError: false}
		m.notify("Reminder", body, "info")
		if m.Engine != nil {
			return m, waitForEventCmd(m.Engine.C())
		}
		return m, nil
	case RefreshMsg:
		if m.Backend == nil {
			return m, nil
		}
		return m, tea.Batch(m.loadAgendaCmd(), m.loadRulesCmd(), minuteTickCmd())
	}

	return m, nil
}

func (m Model) View() string {
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
	case ViewAgenda:
		leftPane = m.renderAgendaView()
		rightPane = m.renderItemDetailPane() + m.renderHelpIfVisible()
	case ViewRules:
		leftPane = m.renderRulesView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}
	notificationView := strings.TrimSpace(m.renderNotificationsView())
	if m.spinnerActive {
		spin := m.syncSpinner.View()
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "refresh: " + spin + " running"}, "\n"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("dayplan | view: %s | selected: %s | %s", m.CurrentView, m.SelectedItemID, m.now().In(m.Loc).Format("2006-01-02")),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s agenda | %s rules | / cmd | %s refresh | %s help | %s quit", m.Keys.Agenda, m.Keys.Rules, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewAgenda, ViewRules:
		return true
	default:
		return false
	}
}
