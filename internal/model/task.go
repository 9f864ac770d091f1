package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid item status")
	ErrInvalidPriority = errors.New("model: invalid item priority")
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting, higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Item is the scheduling view of a task, project, or goal: the fields the
// agenda and notification code needs, nothing the store layer owns.
type Item struct {
	ID         string
	Title      string
	Priority   Priority
	Status     Status
	StartDate  *Date
	DueDate    *Date
	StartTime  string // "HH:mm", empty when unset
	Recurrence *RecurrenceRule
}

func (t Item) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: item id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: item title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.StartTime != "" {
		if _, err := ParseMinute(t.StartTime); err != nil {
			return err
		}
	}
	return nil
}
