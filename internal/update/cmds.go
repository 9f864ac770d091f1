package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/agenda"
	"github.com/sandeepkv93/dayplan/internal/notify"
)

func (m Model) loadAgendaCmd() tea.Cmd {
	backend, loc, now := m.Backend, m.Loc, m.now
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := backend.LoadItems(context.Background())
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return AgendaLoadedMsg{View: agenda.Compute(items, agenda.TodayIn(now(), loc))}
	}
}

func (m Model) loadRulesCmd() tea.Cmd {
	backend := m.Backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		rules, err := backend.Rules(context.Background())
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		quiet, err := backend.QuietConfig(context.Background())
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return RulesLoadedMsg{Rules: rules, Quiet: quiet}
	}
}

// minuteTickCmd keeps the agenda current across midnight without user input.
func minuteTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return RefreshMsg{} })
}

func waitForEventCmd(ch <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationFiredMsg{Event: ev}
	}
}
