package storage

import "time"

// Row types mirror the SQLite schema. Dates are "2006-01-02" strings, clock
// values are "HH:mm", weekday and date sets are comma-joined. Conversion to
// domain values (and the validation that goes with it) happens in Store.

type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	StartDate   string
	DueDate     string
	StartTime   string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type RecurrenceRule struct {
	ID          string
	TaskID      string
	RuleType    string
	WeekDays    string
	MonthDay    int
	CustomDates string
	Enabled     bool
	CreatedAt   time.Time
}

type NotificationRule struct {
	ID           string
	RuleType     string
	FireTime     string
	DaysOfWeek   string
	SpecificDate string
	Message      string
	IsActive     bool
	LinkedTaskID string
	CreatedAt    time.Time
}

type QuietConfig struct {
	HoursEnabled bool
	QuietStart   string
	QuietEnd     string
	QuietDays    string
	UpdatedAt    time.Time
}

type TaskListFilter struct {
	Status string
	Limit  int
	Offset int
}

type NotificationListFilter struct {
	Active *bool
	Limit  int
	Offset int
}
