package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m Model) handleAgendaKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Agenda.Cursor > 0 {
			m.Agenda.Cursor--
		}
		m.syncSelectedItemToCursor()
	case "down", "j":
		if m.Agenda.Cursor < len(m.Agenda.View.Today)-1 {
			m.Agenda.Cursor++
		}
		m.syncSelectedItemToCursor()
	case "enter", "d":
		return m.completeSelected()
	}
	return m, nil
}

func (m Model) completeSelected() (Model, tea.Cmd) {
	sel, ok := m.currentAgendaItem()
	if !ok {
		m.Status = StatusBar{Text: "nothing selected", IsError: true}
		return m, nil
	}
	if m.Backend == nil {
		m.Status = StatusBar{Text: "no store attached", IsError: true}
		return m, nil
	}
	if err := m.Backend.CompleteItem(context.Background(), sel.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Error", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("done: %s", sel.Title), IsError: false}
	m.notify("Done", sel.Title, "info")
	return m, m.loadAgendaCmd()
}

func (m *Model) syncSelectedItemToCursor() {
	if sel, ok := m.currentAgendaItem(); ok {
		m.SelectedItemID = sel.ID
	}
}

func (m Model) currentAgendaItem() (model.Item, bool) {
	items := m.Agenda.View.Today
	if len(items) == 0 {
		return model.Item{}, false
	}
	if m.Agenda.Cursor < 0 || m.Agenda.Cursor >= len(items) {
		return model.Item{}, false
	}
	return items[m.Agenda.Cursor], true
}

func (m Model) renderAgendaView() string {
	overdueIDs := make(map[string]bool, len(m.Agenda.View.Overdue))
	for _, item := range m.Agenda.View.Overdue {
		overdueIDs[item.ID] = true
	}
	return views.RenderAgendaPanel(views.AgendaPanelData{
		Date:       m.now().In(m.Loc).Format("2006-01-02"),
		Today:      agendaItemsData(m.Agenda.View.Today, overdueIDs),
		Overdue:    agendaItemsData(m.Agenda.View.Overdue, overdueIDs),
		SelectedID: m.SelectedItemID,
		ListView:   m.agendaList.View(),
	})
}

func agendaItemsData(items []model.Item, overdueIDs map[string]bool) []views.AgendaItemData {
	out := make([]views.AgendaItemData, 0, len(items))
	for _, item := range items {
		data := views.AgendaItemData{
			ID:        item.ID,
			Title:     item.Title,
			Priority:  string(item.Priority),
			StartTime: item.StartTime,
			Overdue:   overdueIDs[item.ID],
			Recurring: item.Recurrence != nil && item.Recurrence.Enabled,
		}
		if item.DueDate != nil {
			data.DueDate = item.DueDate.String()
		}
		out = append(out, data)
	}
	return out
}
