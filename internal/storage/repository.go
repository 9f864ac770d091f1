package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateRecurrence(ctx context.Context, in RecurrenceRule) error
	GetRecurrenceForTask(ctx context.Context, taskID string) (RecurrenceRule, error)
	UpdateRecurrence(ctx context.Context, in RecurrenceRule) error
	DeleteRecurrence(ctx context.Context, id string) error
	ListRecurrences(ctx context.Context) ([]RecurrenceRule, error)

	CreateNotificationRule(ctx context.Context, in NotificationRule) error
	GetNotificationRule(ctx context.Context, id string) (NotificationRule, error)
	UpdateNotificationRule(ctx context.Context, in NotificationRule) error
	DeleteNotificationRule(ctx context.Context, id string) error
	ListNotificationRules(ctx context.Context, filter NotificationListFilter) ([]NotificationRule, error)

	GetQuietConfig(ctx context.Context) (QuietConfig, error)
	SaveQuietConfig(ctx context.Context, in QuietConfig) error

	LastFired(ctx context.Context, ruleID string) (*time.Time, error)
	MarkFired(ctx context.Context, ruleID string, at time.Time) error
}
