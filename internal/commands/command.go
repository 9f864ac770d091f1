package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/dayplan/internal/model"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeDone  Type = "done"
	TypeShow  Type = "show"
	TypeQuiet Type = "quiet"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Due      string // "2006-01-02", empty when unset
	At       string // "HH:mm", empty when unset
	Priority string
}

type DoneArgs struct {
	Target string // item id or unique id prefix
}

type ShowArgs struct {
	Subject string // today|overdue|rules
}

type QuietArgs struct {
	Enabled bool
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Done  *DoneArgs
	Show  *ShowArgs
	Quiet *QuietArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeQuiet:
		return parseQuiet(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts a free-form title followed by optional key:value
// modifiers: due:2006-01-02, at:HH:mm, p:low|medium|high. Modifiers may
// appear in any order after the first title word.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	out := AddArgs{Priority: string(model.PriorityMedium)}
	titleWords := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			v := strings.TrimSpace(arg[len("due:"):])
			if _, err := model.ParseDate(v); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad due date %q, want YYYY-MM-DD", v)}
			}
			out.Due = v
		case strings.HasPrefix(lower, "at:"):
			v := strings.TrimSpace(arg[len("at:"):])
			if _, err := model.ParseMinute(v); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad start time %q, want HH:mm", v)}
			}
			out.At = v
		case strings.HasPrefix(lower, "p:"):
			v := strings.ToLower(strings.TrimSpace(arg[len("p:"):]))
			if !model.Priority(v).IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad priority %q, want low, medium, or high", v)}
			}
			out.Priority = v
		default:
			titleWords = append(titleWords, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires an item id"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "today", "overdue", "rules":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("show %q: want today, overdue, or rules", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseQuiet(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "quiet requires on or off"}
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return Command{Type: TypeQuiet, Raw: raw, Quiet: &QuietArgs{Enabled: true}}, nil
	case "off":
		return Command{Type: TypeQuiet, Raw: raw, Quiet: &QuietArgs{Enabled: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("quiet %q: want on or off", args[0])}
	}
}
