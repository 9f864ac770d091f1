package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
	RecurrenceWeekdays RecurrenceType = "weekdays"
	RecurrenceCustom   RecurrenceType = "custom"
)

var (
	ErrInvalidRecurrenceType = errors.New("model: invalid recurrence type")
	ErrInvalidMonthDay       = errors.New("model: invalid recurrence month day")
	ErrEmptyWeekdaySet       = errors.New("model: weekly recurrence requires weekdays")
	ErrEmptyCustomDates      = errors.New("model: custom recurrence requires dates")
)

// RecurrenceRule describes on which calendar dates a schedulable item repeats.
// Exactly one of WeekDays, MonthDay, CustomDates is meaningful, selected by
// Type. Evaluation code treats rules as read-only.
type RecurrenceRule struct {
	Enabled     bool
	Type        RecurrenceType
	WeekDays    []time.Weekday
	MonthDay    int
	CustomDates []Date
}

// Validate reports configuration errors for the boundary where rules are
// loaded. OccursOn never consults it: a rule that fails validation simply
// never occurs.
func (r RecurrenceRule) Validate() error {
	switch r.Type {
	case RecurrenceDaily, RecurrenceWeekdays:
	case RecurrenceWeekly:
		if len(r.WeekDays) == 0 {
			return ErrEmptyWeekdaySet
		}
		s := make([]int, 0, len(r.WeekDays))
		for _, d := range r.WeekDays {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: weekday %d out of range", ErrEmptyWeekdaySet, d)
			}
			s = append(s, int(d))
		}
		sort.Ints(s)
		for i := 1; i < len(s); i++ {
			if s[i] == s[i-1] {
				return errors.New("model: duplicate weekday in recurrence")
			}
		}
	case RecurrenceMonthly:
		if r.MonthDay < 1 || r.MonthDay > 31 {
			return fmt.Errorf("%w: %d", ErrInvalidMonthDay, r.MonthDay)
		}
	case RecurrenceCustom:
		if len(r.CustomDates) == 0 {
			return ErrEmptyCustomDates
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceType, r.Type)
	}
	return nil
}

// OccursOn reports whether the rule occurs on the given date. It is total:
// disabled or malformed rules evaluate to false rather than failing.
func (r RecurrenceRule) OccursOn(d Date) bool {
	if !r.Enabled {
		return false
	}
	switch r.Type {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		for _, w := range r.WeekDays {
			if w == d.Weekday() {
				return true
			}
		}
		return false
	case RecurrenceMonthly:
		// A month day past the end of the month never occurs that month:
		// no clamping to the last day, no rollover into the next month.
		if r.MonthDay < 1 || r.MonthDay > 31 {
			return false
		}
		return d.Day == r.MonthDay
	case RecurrenceWeekdays:
		wd := d.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case RecurrenceCustom:
		for _, c := range r.CustomDates {
			if c.Equal(d) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
