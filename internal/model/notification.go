package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidNotificationType = errors.New("model: invalid notification rule type")
	ErrMissingFireTime         = errors.New("model: time rule requires a fire time")
	ErrMissingDaysOfWeek       = errors.New("model: day rule requires days of week")
	ErrMissingSpecificDate     = errors.New("model: date rule requires a specific date")
)

type NotificationType string

const (
	NotificationTime NotificationType = "time"
	NotificationDay  NotificationType = "day"
	NotificationDate NotificationType = "date"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTime, NotificationDay, NotificationDate:
		return true
	default:
		return false
	}
}

// NotificationRule is a trigger definition. Exactly one of Time, DaysOfWeek,
// SpecificDate is populated, matching Type. LinkedItemID is informational
// only; evaluation never dereferences it.
type NotificationRule struct {
	ID           string
	Type         NotificationType
	Time         string // "HH:mm" for time rules
	DaysOfWeek   []time.Weekday
	SpecificDate *Date
	Message      string
	IsActive     bool
	LinkedItemID string
}

func (r NotificationRule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: notification rule id is required")
	}
	switch r.Type {
	case NotificationTime:
		if r.Time == "" {
			return ErrMissingFireTime
		}
		if _, err := ParseMinute(r.Time); err != nil {
			return err
		}
	case NotificationDay:
		if len(r.DaysOfWeek) == 0 {
			return ErrMissingDaysOfWeek
		}
		for _, d := range r.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: weekday %d out of range", ErrMissingDaysOfWeek, d)
			}
		}
	case NotificationDate:
		if r.SpecificDate == nil {
			return ErrMissingSpecificDate
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, r.Type)
	}
	return nil
}

// QuietConfig suppresses notification firing inside a wall-clock window
// (which may wrap past midnight) and on whole weekdays. It never disables
// or deletes rules.
type QuietConfig struct {
	QuietHoursEnabled bool
	QuietStart        string // "HH:mm"
	QuietEnd          string // "HH:mm"
	QuietDays         []time.Weekday
}

func (q QuietConfig) Validate() error {
	if q.QuietHoursEnabled {
		if _, err := ParseMinute(q.QuietStart); err != nil {
			return err
		}
		if _, err := ParseMinute(q.QuietEnd); err != nil {
			return err
		}
	}
	for _, d := range q.QuietDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("model: quiet day %d out of range", d)
		}
	}
	return nil
}
