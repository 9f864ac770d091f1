package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderItemDetailPane() string {
	if _, ok := m.currentAgendaItem(); !ok {
		return "detail:\n(no selection)"
	}
	return "detail:\n" + m.detailView.View()
}

func renderItemDetail(item model.Item) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", item.Title))
	b.WriteString(fmt.Sprintf("- id: `%s`\n", item.ID))
	b.WriteString(fmt.Sprintf("- priority: %s\n", item.Priority))
	b.WriteString(fmt.Sprintf("- status: %s\n", item.Status))
	if item.StartTime != "" {
		b.WriteString(fmt.Sprintf("- starts: %s\n", item.StartTime))
	}
	if item.DueDate != nil {
		b.WriteString(fmt.Sprintf("- due: %s\n", item.DueDate))
	}
	if item.Recurrence != nil && item.Recurrence.Enabled {
		b.WriteString(fmt.Sprintf("- repeats: %s\n", item.Recurrence.Type))
	}
	return views.RenderMarkdown(b.String())
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
