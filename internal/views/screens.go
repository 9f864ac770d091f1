package views

import (
	"fmt"
	"strings"
)

type AgendaItemData struct {
	ID        string
	Title     string
	Priority  string
	StartTime string
	DueDate   string
	Overdue   bool
	Recurring bool
}

type AgendaPanelData struct {
	Date       string
	Today      []AgendaItemData
	Overdue    []AgendaItemData
	SelectedID string
	ListView   string
}

type RuleItemData struct {
	ID       string
	Type     string
	When     string
	Message  string
	IsActive bool
}

type RulesPanelData struct {
	Rules       []RuleItemData
	QuietStatus string
	SelectedID  string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderAgendaPanel(data AgendaPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Date))
	b.WriteString("actions: [j/k]move [enter]done [a]add [1]agenda [2]rules\n")
	if data.ListView != "" {
		b.WriteString(data.ListView + "\n")
	}
	renderAgendaSection(&b, "Today", data.Today, data.SelectedID)
	renderAgendaSection(&b, "Overdue", data.Overdue, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderRulesPanel(data RulesPanelData) string {
	var b strings.Builder
	b.WriteString("notification rules:\n")
	b.WriteString(fmt.Sprintf("quiet hours: %s\n", data.QuietStatus))
	b.WriteString("actions: [j/k]move [q]uiet-toggle [1]agenda [2]rules\n")
	if len(data.Rules) == 0 {
		b.WriteString("(no rules)")
		return b.String()
	}
	for _, rule := range data.Rules {
		cursor := " "
		if data.SelectedID == rule.ID {
			cursor = ">"
		}
		state := "on"
		if !rule.IsActive {
			state = "off"
		}
		b.WriteString(fmt.Sprintf("%s [%s/%s] %s %s\n", cursor, rule.Type, state, rule.When, rule.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderAgendaSection(b *strings.Builder, title string, items []AgendaItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, urgencyBadge(item), item.Title))
		if item.StartTime != "" {
			b.WriteString(fmt.Sprintf(" @%s", item.StartTime))
		}
		if item.DueDate != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.DueDate))
		}
		if item.Recurring {
			b.WriteString(" (repeats)")
		}
		b.WriteString("\n")
	}
}

func urgencyBadge(item AgendaItemData) string {
	if item.Overdue {
		return "[RED]"
	}
	if item.Priority == "high" {
		return "[YELLOW]"
	}
	return "[GREEN]"
}
