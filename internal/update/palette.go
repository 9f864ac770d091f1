package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sandeepkv93/dayplan/internal/commands"
	"github.com/sandeepkv93/dayplan/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.Backend == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no store attached"}
			}
			item := model.Item{
				ID:        uuid.NewString(),
				Title:     a.Title,
				Status:    model.StatusTodo,
				Priority:  model.Priority(a.Priority),
				StartTime: a.At,
			}
			if a.Due != "" {
				due, parseErr := model.ParseDate(a.Due)
				if parseErr != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: parseErr.Error()}
				}
				item.DueDate = &due
			}
			if createErr := m.Backend.CreateItem(context.Background(), item); createErr != nil {
				return commands.Result{}, createErr
			}
			followUp = m.loadAgendaCmd()
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Title)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			if m.Backend == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no store attached"}
			}
			id, matchErr := m.resolveItemPrefix(d.Target)
			if matchErr != nil {
				return commands.Result{}, matchErr
			}
			if doneErr := m.Backend.CompleteItem(context.Background(), id); doneErr != nil {
				return commands.Result{}, doneErr
			}
			followUp = m.loadAgendaCmd()
			return commands.Result{Message: fmt.Sprintf("done: %s", id)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "rules":
				m.CurrentView = ViewRules
			default:
				m.CurrentView = ViewAgenda
			}
			return commands.Result{Message: fmt.Sprintf("show %s", s.Subject)}, nil
		},
		Quiet: func(q commands.QuietArgs) (commands.Result, error) {
			if m.Backend == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no store attached"}
			}
			if quietErr := m.Backend.SetQuietEnabled(context.Background(), q.Enabled); quietErr != nil {
				return commands.Result{}, quietErr
			}
			followUp = m.loadRulesCmd()
			state := "off"
			if q.Enabled {
				state = "on"
			}
			return commands.Result{Message: "quiet hours " + state}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, followUp
}

// resolveItemPrefix matches a full id or a unique id prefix against the
// loaded agenda.
func (m Model) resolveItemPrefix(target string) (string, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	matches := make([]string, 0, 1)
	seen := make(map[string]bool)
	for _, item := range append(append([]model.Item{}, m.Agenda.View.Today...), m.Agenda.View.Overdue...) {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		if strings.HasPrefix(strings.ToLower(item.ID), target) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no item matches %q", target)}
	default:
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%q matches %d items", target, len(matches))}
	}
}
