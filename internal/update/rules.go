package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m Model) handleRulesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Rules.Cursor > 0 {
			m.Rules.Cursor--
		}
	case "down", "j":
		if m.Rules.Cursor < len(m.Rules.Rules)-1 {
			m.Rules.Cursor++
		}
	case "t":
		return m.toggleQuiet()
	}
	return m, nil
}

func (m Model) toggleQuiet() (Model, tea.Cmd) {
	if m.Backend == nil {
		m.Status = StatusBar{Text: "no store attached", IsError: true}
		return m, nil
	}
	next := !m.Rules.Quiet.QuietHoursEnabled
	if err := m.Backend.SetQuietEnabled(context.Background(), next); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	state := "off"
	if next {
		state = "on"
	}
	m.Status = StatusBar{Text: "quiet hours " + state, IsError: false}
	return m, m.loadRulesCmd()
}

func (m Model) renderRulesView() string {
	rules := make([]views.RuleItemData, 0, len(m.Rules.Rules))
	selectedID := ""
	for i, rule := range m.Rules.Rules {
		if i == m.Rules.Cursor {
			selectedID = rule.ID
		}
		rules = append(rules, views.RuleItemData{
			ID:       rule.ID,
			Type:     string(rule.Type),
			When:     ruleWhen(rule),
			Message:  rule.Message,
			IsActive: rule.IsActive,
		})
	}
	return views.RenderRulesPanel(views.RulesPanelData{
		Rules:       rules,
		QuietStatus: quietStatus(m.Rules.Quiet),
		SelectedID:  selectedID,
	})
}

func ruleWhen(rule model.NotificationRule) string {
	switch rule.Type {
	case model.NotificationTime:
		return rule.Time
	case model.NotificationDay:
		parts := make([]string, 0, len(rule.DaysOfWeek))
		for _, d := range rule.DaysOfWeek {
			parts = append(parts, d.String()[:3])
		}
		return strings.Join(parts, ",")
	case model.NotificationDate:
		if rule.SpecificDate != nil {
			return rule.SpecificDate.String()
		}
	}
	return "?"
}

func quietStatus(q model.QuietConfig) string {
	if !q.QuietHoursEnabled && len(q.QuietDays) == 0 {
		return "off"
	}
	parts := make([]string, 0, 2)
	if q.QuietHoursEnabled {
		parts = append(parts, fmt.Sprintf("%s-%s", q.QuietStart, q.QuietEnd))
	}
	if len(q.QuietDays) > 0 {
		days := make([]string, 0, len(q.QuietDays))
		for _, d := range q.QuietDays {
			days = append(days, d.String()[:3])
		}
		parts = append(parts, "days: "+strings.Join(days, ","))
	}
	return strings.Join(parts, " | ")
}
