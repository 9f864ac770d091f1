package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

// Conversions between row and domain types. Weekday integers and date
// strings are range-checked here, at the loading boundary, so the pure
// evaluation code never sees a raw encoding.

func taskToModel(t Task, rec *RecurrenceRule) (model.Item, error) {
	item := model.Item{
		ID:        t.ID,
		Title:     t.Title,
		Priority:  model.Priority(t.Priority),
		Status:    model.Status(t.Status),
		StartTime: t.StartTime,
	}
	if t.StartDate != "" {
		d, err := model.ParseDate(t.StartDate)
		if err != nil {
			return model.Item{}, fmt.Errorf("task %s start date: %w", t.ID, err)
		}
		item.StartDate = &d
	}
	if t.DueDate != "" {
		d, err := model.ParseDate(t.DueDate)
		if err != nil {
			return model.Item{}, fmt.Errorf("task %s due date: %w", t.ID, err)
		}
		item.DueDate = &d
	}
	if rec != nil {
		rule, err := recurrenceToModel(*rec)
		if err != nil {
			return model.Item{}, err
		}
		item.Recurrence = &rule
	}
	if err := item.Validate(); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func taskFromModel(item model.Item, createdAt time.Time) Task {
	row := Task{
		ID:        item.ID,
		Title:     item.Title,
		Status:    string(item.Status),
		Priority:  string(item.Priority),
		StartTime: item.StartTime,
		CreatedAt: createdAt,
	}
	if item.StartDate != nil {
		row.StartDate = item.StartDate.String()
	}
	if item.DueDate != nil {
		row.DueDate = item.DueDate.String()
	}
	return row
}

func recurrenceFromModel(id, taskID string, r model.RecurrenceRule, createdAt time.Time) RecurrenceRule {
	return RecurrenceRule{
		ID:          id,
		TaskID:      taskID,
		RuleType:    string(r.Type),
		WeekDays:    joinWeekdays(r.WeekDays),
		MonthDay:    r.MonthDay,
		CustomDates: joinDates(r.CustomDates),
		Enabled:     r.Enabled,
		CreatedAt:   createdAt,
	}
}

func recurrenceToModel(r RecurrenceRule) (model.RecurrenceRule, error) {
	rule := model.RecurrenceRule{
		Enabled:  r.Enabled,
		Type:     model.RecurrenceType(r.RuleType),
		MonthDay: r.MonthDay,
	}
	days, err := splitWeekdays(r.WeekDays)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("recurrence %s: %w", r.ID, err)
	}
	rule.WeekDays = days
	dates, err := splitDates(r.CustomDates)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("recurrence %s: %w", r.ID, err)
	}
	rule.CustomDates = dates
	if err := rule.Validate(); err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("recurrence %s: %w", r.ID, err)
	}
	return rule, nil
}

func notificationToModel(n NotificationRule) (model.NotificationRule, error) {
	rule := model.NotificationRule{
		ID:           n.ID,
		Type:         model.NotificationType(n.RuleType),
		Time:         n.FireTime,
		Message:      n.Message,
		IsActive:     n.IsActive,
		LinkedItemID: n.LinkedTaskID,
	}
	days, err := splitWeekdays(n.DaysOfWeek)
	if err != nil {
		return model.NotificationRule{}, fmt.Errorf("notification %s: %w", n.ID, err)
	}
	rule.DaysOfWeek = days
	if n.SpecificDate != "" {
		d, err := model.ParseDate(n.SpecificDate)
		if err != nil {
			return model.NotificationRule{}, fmt.Errorf("notification %s: %w", n.ID, err)
		}
		rule.SpecificDate = &d
	}
	if err := rule.Validate(); err != nil {
		return model.NotificationRule{}, err
	}
	return rule, nil
}

func notificationFromModel(r model.NotificationRule, createdAt time.Time) NotificationRule {
	row := NotificationRule{
		ID:           r.ID,
		RuleType:     string(r.Type),
		FireTime:     r.Time,
		DaysOfWeek:   joinWeekdays(r.DaysOfWeek),
		Message:      r.Message,
		IsActive:     r.IsActive,
		LinkedTaskID: r.LinkedItemID,
		CreatedAt:    createdAt,
	}
	if r.SpecificDate != nil {
		row.SpecificDate = r.SpecificDate.String()
	}
	return row
}

func quietToModel(q QuietConfig) (model.QuietConfig, error) {
	days, err := splitWeekdays(q.QuietDays)
	if err != nil {
		return model.QuietConfig{}, fmt.Errorf("quiet config: %w", err)
	}
	out := model.QuietConfig{
		QuietHoursEnabled: q.HoursEnabled,
		QuietStart:        q.QuietStart,
		QuietEnd:          q.QuietEnd,
		QuietDays:         days,
	}
	if err := out.Validate(); err != nil {
		return model.QuietConfig{}, err
	}
	return out, nil
}

func quietFromModel(q model.QuietConfig, updatedAt time.Time) QuietConfig {
	return QuietConfig{
		HoursEnabled: q.QuietHoursEnabled,
		QuietStart:   q.QuietStart,
		QuietEnd:     q.QuietEnd,
		QuietDays:    joinWeekdays(q.QuietDays),
		UpdatedAt:    updatedAt,
	}
}

func splitWeekdays(raw string) ([]time.Weekday, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("storage: bad weekday %q", p)
		}
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("storage: weekday %d out of range", n)
		}
		out = append(out, time.Weekday(n))
	}
	return out, nil
}

func joinWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func splitDates(raw string) ([]model.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]model.Date, 0, len(parts))
	for _, p := range parts {
		d, err := model.ParseDate(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func joinDates(dates []model.Date) string {
	if len(dates) == 0 {
		return ""
	}
	parts := make([]string, 0, len(dates))
	for _, d := range dates {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ",")
}
